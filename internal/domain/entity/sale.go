package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// SaleItem línea de una venta.
type SaleItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Sale venta del punto de venta. PatientID vacío = cliente de mostrador.
type Sale struct {
	Base
	PatientID     string          `json:"patientId,omitempty"`
	Patient       *Patient        `json:"patient,omitempty"`
	WorkerID      string          `json:"workerId,omitempty"`
	Items         []SaleItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`
}

// SalesStats resumen de ventas de un período (sin anuladas).
type SalesStats struct {
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	ItemsSold     int             `json:"itemsSold"`
}

// SaleInput payload de creación. Subtotal y Total se calculan de los ítems.
type SaleInput struct {
	PatientID     string          `json:"patientId,omitempty"`
	WorkerID      string          `json:"workerId,omitempty"`
	Items         []SaleItem      `json:"items"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"paymentMethod"`
	Date          time.Time       `json:"date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Validate al menos un ítem con cantidad y precio válidos; descuento <= subtotal.
func (in SaleInput) Validate() error {
	if len(in.Items) == 0 {
		return required("venta", "items", "")
	}
	for _, it := range in.Items {
		if err := required("venta", "items.productId", it.ProductID); err != nil {
			return err
		}
		if it.Quantity <= 0 {
			return positive("venta", "items.quantity", decimal.NewFromInt(int64(it.Quantity)))
		}
		if err := nonNegative("venta", "items.unitPrice", it.UnitPrice); err != nil {
			return err
		}
	}
	if err := nonNegative("venta", "discount", in.Discount); err != nil {
		return err
	}
	if in.Discount.GreaterThan(SaleSubtotal(in.Items)) {
		return positive("venta", "total", SaleSubtotal(in.Items).Sub(in.Discount))
	}
	return oneOf("venta", "paymentMethod", in.PaymentMethod, PaymentCash, PaymentCard, PaymentTransfer, PaymentAbono)
}

// Build materializa la venta recalculando subtotales.
func (in SaleInput) Build(id string, now time.Time) Sale {
	items := make([]SaleItem, len(in.Items))
	for i, it := range in.Items {
		it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items[i] = it
	}
	subtotal := SaleSubtotal(items)
	return Sale{
		Base:          newBase(id, now),
		PatientID:     in.PatientID,
		WorkerID:      in.WorkerID,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Total:         subtotal.Sub(in.Discount),
		PaymentMethod: in.PaymentMethod,
		Status:        SaleCompleted,
		Date:          orNow(in.Date, now),
		Notes:         in.Notes,
	}
}

// SaleSubtotal suma cantidad*precio de los ítems.
func SaleSubtotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// SalePatch actualización parcial (anulación, notas, método de pago).
type SalePatch struct {
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Status        *string `json:"status,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Apply aplica los campos presentes.
func (p SalePatch) Apply(item *Sale, now time.Time) {
	set(&item.PaymentMethod, p.PaymentMethod)
	set(&item.Status, p.Status)
	set(&item.Notes, p.Notes)
	item.UpdatedAt = now
}
