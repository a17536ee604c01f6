package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de abono.
const (
	AbonoActive    = "active"
	AbonoUsed      = "used"
	AbonoExpired   = "expired"
	AbonoCancelled = "cancelled"
)

// Abono crédito prepagado de un paciente, consumible en citas o ventas.
type Abono struct {
	Base
	PatientID       string          `json:"patientId"`
	Patient         *Patient        `json:"patient,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	Date            time.Time       `json:"date"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// Usable indica si el abono está activo, con saldo y sin vencer en now.
func (a Abono) Usable(now time.Time) bool {
	if a.Status != AbonoActive || !a.RemainingAmount.IsPositive() {
		return false
	}
	return a.ExpiresAt == nil || !now.After(*a.ExpiresAt)
}

// AbonoUsage bitácora de consumo de un abono.
type AbonoUsage struct {
	Base
	AbonoID       string          `json:"abonoId"`
	PatientID     string          `json:"patientId"`
	Amount        decimal.Decimal `json:"amount"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	SaleID        string          `json:"saleId,omitempty"`
	Description   string          `json:"description,omitempty"`
	Date          time.Time       `json:"date"`
}

// UseAbonoInput solicitud de consumo.
type UseAbonoInput struct {
	Amount        decimal.Decimal `json:"amount"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	SaleID        string          `json:"saleId,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// Validate el monto debe ser positivo.
func (in UseAbonoInput) Validate() error {
	return positive("abono", "amount", in.Amount)
}

// AbonoUseResult resultado de un consumo: el abono actualizado y su registro
// de uso. Usage puede ser nil si la bitácora no se pudo escribir.
type AbonoUseResult struct {
	Abono Abono       `json:"abono"`
	Usage *AbonoUsage `json:"usage,omitempty"`
}

// AbonoInput payload de creación. RemainingAmount arranca en Amount.
type AbonoInput struct {
	PatientID     string          `json:"patientId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Date          time.Time       `json:"date,omitempty"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Validate paciente y monto positivo.
func (in AbonoInput) Validate() error {
	if err := required("abono", "patientId", in.PatientID); err != nil {
		return err
	}
	if err := positive("abono", "amount", in.Amount); err != nil {
		return err
	}
	return oneOf("abono", "paymentMethod", in.PaymentMethod, PaymentCash, PaymentCard, PaymentTransfer)
}

// Build materializa el abono.
func (in AbonoInput) Build(id string, now time.Time) Abono {
	return Abono{
		Base:            newBase(id, now),
		PatientID:       in.PatientID,
		Amount:          in.Amount,
		RemainingAmount: in.Amount,
		Status:          AbonoActive,
		PaymentMethod:   in.PaymentMethod,
		Date:            orNow(in.Date, now),
		ExpiresAt:       in.ExpiresAt,
		Notes:           in.Notes,
	}
}

// AbonoPatch actualización parcial. El saldo solo cambia con UseAbono.
type AbonoPatch struct {
	Status    *string    `json:"status,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Apply aplica los campos presentes.
func (p AbonoPatch) Apply(item *Abono, now time.Time) {
	set(&item.Status, p.Status)
	if p.ExpiresAt != nil {
		item.ExpiresAt = p.ExpiresAt
	}
	set(&item.Notes, p.Notes)
	item.UpdatedAt = now
}
