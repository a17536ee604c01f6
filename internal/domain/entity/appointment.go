package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cita.
const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Appointment cita de un paciente con un trabajador.
// Patient y Worker son opcionales: el backend remoto puede devolverlos embebidos.
type Appointment struct {
	Base
	PatientID       string          `json:"patientId"`
	Patient         *Patient        `json:"patient,omitempty"`
	WorkerID        string          `json:"workerId"`
	Worker          *Worker         `json:"worker,omitempty"`
	Date            time.Time       `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

// AppointmentStats conteo de citas por estado.
type AppointmentStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"noShow"`
	Today     int `json:"today"`
	Upcoming  int `json:"upcoming"`
}

// AppointmentInput payload de creación.
type AppointmentInput struct {
	PatientID       string          `json:"patientId"`
	WorkerID        string          `json:"workerId"`
	Date            time.Time       `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

// Validate paciente, trabajador y fecha son obligatorios.
func (in AppointmentInput) Validate() error {
	if err := required("cita", "patientId", in.PatientID); err != nil {
		return err
	}
	if err := required("cita", "workerId", in.WorkerID); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return required("cita", "date", "")
	}
	if in.Status != "" {
		if err := oneOf("cita", "status", in.Status, appointmentStatuses...); err != nil {
			return err
		}
	}
	return nonNegative("cita", "price", in.Price)
}

var appointmentStatuses = []string{
	AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow,
}

// Build materializa la cita. Duración por defecto 30 minutos.
func (in AppointmentInput) Build(id string, now time.Time) Appointment {
	status := in.Status
	if status == "" {
		status = AppointmentScheduled
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = 30
	}
	return Appointment{
		Base:            newBase(id, now),
		PatientID:       in.PatientID,
		WorkerID:        in.WorkerID,
		Date:            in.Date,
		DurationMinutes: duration,
		Status:          status,
		Reason:          in.Reason,
		Notes:           in.Notes,
		Price:           in.Price,
	}
}

// AppointmentPatch actualización parcial.
type AppointmentPatch struct {
	PatientID       *string          `json:"patientId,omitempty"`
	WorkerID        *string          `json:"workerId,omitempty"`
	Date            *time.Time       `json:"date,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Status          *string          `json:"status,omitempty"`
	Reason          *string          `json:"reason,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

// Apply aplica los campos presentes. Cambiar el id del paciente o del
// trabajador descarta el objeto embebido, que ya no corresponde.
func (p AppointmentPatch) Apply(item *Appointment, now time.Time) {
	if p.PatientID != nil && *p.PatientID != item.PatientID {
		item.PatientID, item.Patient = *p.PatientID, nil
	}
	if p.WorkerID != nil && *p.WorkerID != item.WorkerID {
		item.WorkerID, item.Worker = *p.WorkerID, nil
	}
	set(&item.Date, p.Date)
	set(&item.DurationMinutes, p.DurationMinutes)
	set(&item.Status, p.Status)
	set(&item.Reason, p.Reason)
	set(&item.Notes, p.Notes)
	set(&item.Price, p.Price)
	item.UpdatedAt = now
}
