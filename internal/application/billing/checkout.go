// Package billing contiene los casos de uso del punto de venta: cobro de una
// venta con descuento de inventario y el recibo en PDF.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// CheckoutUseCase registra una venta, descuenta el inventario por cada línea,
// consume el abono si se paga con él y registra el pago del paciente.
//
// No hay transacción entre repositorios: todo se valida antes de la primera
// escritura y, si una escritura posterior falla, se devuelve la respuesta
// parcial junto con *domain.PartialWriteError.
type CheckoutUseCase struct {
	products    repository.ProductRepository
	sales       repository.SaleRepository
	payments    repository.PaymentRepository
	abonos      repository.AbonoRepository
	inventoryUC InventoryUseCase
	log         zerolog.Logger
	now         func() time.Time
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	payments repository.PaymentRepository,
	abonos repository.AbonoRepository,
	inventoryUC InventoryUseCase,
	log zerolog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		products:    products,
		sales:       sales,
		payments:    payments,
		abonos:      abonos,
		inventoryUC: inventoryUC,
		log:         log.With().Str("component", "checkout").Logger(),
		now:         time.Now,
	}
}

// Checkout ejecuta el cobro completo.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("venta", "items", "es obligatorio", domain.ErrInvalidInput)
	}
	if in.PaymentMethod == entity.PaymentAbono && (in.AbonoID == "" || in.PatientID == "") {
		return nil, domain.NewValidationError("venta", "abonoId", "pago con abono requiere abonoId y patientId", domain.ErrInvalidInput)
	}

	// ── 1. Validar productos y stock (solo lectura) ───────────────────────────
	items := make([]entity.SaleItem, 0, len(in.Items))
	requested := make(map[string]int, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.NewValidationError("venta", "items", "producto y cantidad positiva son obligatorios", domain.ErrInvalidInput)
		}
		product, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("checkout: obtener producto: %w", err)
		}
		if product == nil {
			return nil, domain.NewNotFoundError("producto", it.ProductID)
		}
		if !product.Active {
			return nil, domain.NewValidationError("venta", "items", fmt.Sprintf("producto %s inactivo", product.Code), domain.ErrConflict)
		}
		requested[product.ID] += it.Quantity
		if requested[product.ID] > product.Stock {
			return nil, domain.NewValidationError("venta", "items",
				fmt.Sprintf("stock insuficiente para %s: disponible %d", product.Code, product.Stock), domain.ErrInsufficientStock)
		}
		price := product.Price
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}

	saleIn := entity.SaleInput{
		PatientID:     in.PatientID,
		WorkerID:      in.WorkerID,
		Items:         items,
		Discount:      in.Discount,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	if err := saleIn.Validate(); err != nil {
		return nil, err
	}
	total := entity.SaleSubtotal(items).Sub(in.Discount)

	// ── 2. Verificar el abono antes de escribir ───────────────────────────────
	if in.PaymentMethod == entity.PaymentAbono {
		if err := uc.checkAbono(ctx, in.AbonoID, in.PatientID, total); err != nil {
			return nil, err
		}
	}

	// ── 3. Registrar la venta ─────────────────────────────────────────────────
	sale, err := uc.sales.Create(ctx, saleIn)
	if err != nil {
		return nil, fmt.Errorf("checkout: crear venta: %w", err)
	}
	out := &dto.CheckoutResponse{Sale: *sale, Movements: make([]entity.ProductMovement, 0, len(items))}
	partial := func(applied string, err error) (*dto.CheckoutResponse, error) {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Str("applied", applied).Msg("checkout incompleto")
		return out, &domain.PartialWriteError{Applied: applied, Err: err}
	}

	// ── 4. Salidas de inventario (referencia = venta) ─────────────────────────
	for _, it := range items {
		mov, err := uc.inventoryUC.RegisterExit(ctx, it.ProductID, it.Quantity, sale.ID, in.WorkerID)
		if mov != nil {
			out.Movements = append(out.Movements, *mov)
		}
		if err != nil {
			return partial("venta registrada", err)
		}
	}

	// ── 5. Consumo del abono ──────────────────────────────────────────────────
	if in.PaymentMethod == entity.PaymentAbono && total.IsPositive() {
		res, err := uc.abonos.UseAbono(ctx, in.AbonoID, entity.UseAbonoInput{
			Amount:      total,
			SaleID:      sale.ID,
			Description: "venta " + sale.ID,
		})
		var pw *domain.PartialWriteError
		switch {
		case errors.As(err, &pw):
			out.Warnings = append(out.Warnings, "uso de abono sin bitácora: "+pw.Err.Error())
		case err != nil:
			return partial("venta e inventario registrados", err)
		}
		if res != nil {
			out.AbonoUsage = res.Usage
		}
	}

	// ── 6. Pago del paciente ──────────────────────────────────────────────────
	if in.PatientID != "" && total.IsPositive() {
		payment, err := uc.payments.Create(ctx, entity.PaymentInput{
			PatientID: in.PatientID,
			SaleID:    sale.ID,
			Amount:    total,
			Method:    in.PaymentMethod,
			Status:    entity.PaymentCompleted,
		})
		if err != nil {
			return partial("venta, inventario y abono registrados", err)
		}
		out.Payment = payment
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("total", total.String()).Int("items", len(items)).Msg("venta registrada")
	return out, nil
}

func (uc *CheckoutUseCase) checkAbono(ctx context.Context, abonoID, patientID string, total decimal.Decimal) error {
	abono, err := uc.abonos.GetByID(ctx, abonoID)
	if err != nil {
		return fmt.Errorf("checkout: obtener abono: %w", err)
	}
	if abono == nil {
		return domain.NewNotFoundError("abono", abonoID)
	}
	if abono.PatientID != patientID {
		return domain.NewValidationError("venta", "abonoId", "el abono pertenece a otro paciente", domain.ErrConflict)
	}
	if !abono.Usable(uc.now()) || abono.RemainingAmount.LessThan(total) {
		return domain.NewValidationError("venta", "abonoId",
			fmt.Sprintf("saldo insuficiente: disponible %s", abono.RemainingAmount.StringFixed(0)), domain.ErrInsufficientBalance)
	}
	return nil
}
