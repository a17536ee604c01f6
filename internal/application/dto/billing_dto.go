package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// CheckoutRequest body de POST /api/sale/checkout.
// PatientID vacío = cliente de mostrador (no se registra pago).
// AbonoID es obligatorio cuando PaymentMethod es "abono".
type CheckoutRequest struct {
	PatientID     string                `json:"patientId,omitempty"`
	WorkerID      string                `json:"workerId,omitempty"`
	Items         []CheckoutItemRequest `json:"items"`
	Discount      decimal.Decimal       `json:"discount"`
	PaymentMethod string                `json:"paymentMethod"`
	AbonoID       string                `json:"abonoId,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

// CheckoutItemRequest línea del carrito. UnitPrice nil toma el precio del producto.
type CheckoutItemRequest struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// CheckoutResponse venta registrada con sus efectos.
// Warnings lista escrituras secundarias que no se pudieron completar.
type CheckoutResponse struct {
	Sale       entity.Sale              `json:"sale"`
	Movements  []entity.ProductMovement `json:"movements"`
	Payment    *entity.Payment          `json:"payment,omitempty"`
	AbonoUsage *entity.AbonoUsage       `json:"abonoUsage,omitempty"`
	Warnings   []string                 `json:"warnings,omitempty"`
}
