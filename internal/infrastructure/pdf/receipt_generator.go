// Package pdf genera el recibo de venta del punto de venta con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Clínica + NIT  │  N° Recibo + Fecha   │
//	│  DATOS: contacto de la clínica                 │
//	│  PACIENTE: nombre + documento (o mostrador)    │
//	│  ───────────────────────────────────────────   │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal    │
//	│  ───────────────────────────────────────────   │
//	│  TOTALES: Subtotal / Descuento / TOTAL         │
//	│  PIE: método de pago + QR de verificación      │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/application/billing"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentCard:     "Tarjeta",
	entity.PaymentTransfer: "Transferencia",
	entity.PaymentAbono:    "Abono",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct{}

var _ billing.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes. patient nil = mostrador.
func (g *ReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	patient *entity.Patient,
	clinic billing.ClinicInfo,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Recibo de venta", true).
		WithAuthor(clinic.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, clinic))
	m.AddRows(clinicRow(clinic))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(patientRow(patient))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sale *entity.Sale, clinic billing.ClinicInfo) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(clinic.Name, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("NIT: "+nonEmpty(clinic.NIT, "—"), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(sale.ID, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6}),
			text.New("Fecha: "+sale.Date.Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func clinicRow(clinic billing.ClinicInfo) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s   |   Tel: %s   |   %s",
			nonEmpty(clinic.Address, "—"),
			nonEmpty(clinic.Phone, "—"),
			nonEmpty(clinic.Email, "—"),
		), props.Text{Size: 7, Top: 1, Color: colorGray}),
	))
}

func patientRow(patient *entity.Patient) core.Row {
	name, doc := "Cliente de mostrador", ""
	if patient != nil {
		name = strings.TrimSpace(patient.FullName())
		doc = fmt.Sprintf("%s %s   |   Tel: %s", patient.DocumentType, patient.DocumentNumber, nonEmpty(patient.Phone, "—"))
	}
	return row.New(12).Add(col.New(12).Add(
		text.New("PACIENTE", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.New(doc, props.Text{Size: 7, Top: 9, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(it.Subtotal), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(16).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 0),
			label("Descuento:", 5),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
		),
		col.New(4).Add(
			value(money(sale.Subtotal), 0),
			value("-"+money(sale.Discount), 5),
			text.New(money(sale.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10}),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	qr := fmt.Sprintf("RECIBO|%s|%s|%s", sale.ID, sale.Total.StringFixed(0), sale.Date.Format("2006-01-02"))
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Método de pago: "+nonEmpty(paymentLabels[sale.PaymentMethod], sale.PaymentMethod), props.Text{Size: 8, Top: 4, Left: 3}),
			text.New(nonEmpty(sale.Notes, ""), props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 20, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(0)
	if d.IsNegative() {
		return "-$" + formatMoney(s)
	}
	return "$" + formatMoney(s)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
