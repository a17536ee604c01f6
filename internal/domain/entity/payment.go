package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentAbono    = "abono"
)

// Estados de pago.
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentRefunded  = "refunded"
)

// Payment pago recibido de un paciente (cita, venta o abono).
type Payment struct {
	Base
	PatientID     string          `json:"patientId"`
	Patient       *Patient        `json:"patient,omitempty"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	SaleID        string          `json:"saleId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`
}

// IncomeStats ingresos de un período. Solo cuenta pagos completados.
type IncomeStats struct {
	Total    decimal.Decimal            `json:"total"`
	Count    int                        `json:"count"`
	ByMethod map[string]decimal.Decimal `json:"byMethod"`
	Average  decimal.Decimal            `json:"average"`
}

// PaymentInput payload de creación.
type PaymentInput struct {
	PatientID     string          `json:"patientId"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	SaleID        string          `json:"saleId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status,omitempty"`
	Date          time.Time       `json:"date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Validate paciente, monto positivo y método válido.
func (in PaymentInput) Validate() error {
	if err := required("pago", "patientId", in.PatientID); err != nil {
		return err
	}
	if err := positive("pago", "amount", in.Amount); err != nil {
		return err
	}
	if err := oneOf("pago", "method", in.Method, PaymentCash, PaymentCard, PaymentTransfer, PaymentAbono); err != nil {
		return err
	}
	if in.Status != "" {
		return oneOf("pago", "status", in.Status, PaymentCompleted, PaymentPending, PaymentRefunded)
	}
	return nil
}

// Build materializa el pago. Estado por defecto: completed.
func (in PaymentInput) Build(id string, now time.Time) Payment {
	status := in.Status
	if status == "" {
		status = PaymentCompleted
	}
	return Payment{
		Base:          newBase(id, now),
		PatientID:     in.PatientID,
		AppointmentID: in.AppointmentID,
		SaleID:        in.SaleID,
		Amount:        in.Amount,
		Method:        in.Method,
		Status:        status,
		Date:          orNow(in.Date, now),
		Notes:         in.Notes,
	}
}

// PaymentPatch actualización parcial.
type PaymentPatch struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Method *string          `json:"method,omitempty"`
	Status *string          `json:"status,omitempty"`
	Date   *time.Time       `json:"date,omitempty"`
	Notes  *string          `json:"notes,omitempty"`
}

// Apply aplica los campos presentes.
func (p PaymentPatch) Apply(item *Payment, now time.Time) {
	set(&item.Amount, p.Amount)
	set(&item.Method, p.Method)
	set(&item.Status, p.Status)
	set(&item.Date, p.Date)
	set(&item.Notes, p.Notes)
	item.UpdatedAt = now
}
