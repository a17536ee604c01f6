package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un paquete adquirido.
const (
	PatientPackageActive    = "active"
	PatientPackageCompleted = "completed"
	PatientPackageExpired   = "expired"
	PatientPackageCancelled = "cancelled"
)

// PatientPackage paquete de sesiones comprado por un paciente.
// Invariante: UsedSessions + RemainingSessions == TotalSessions.
type PatientPackage struct {
	Base
	PatientID         string          `json:"patientId"`
	Patient           *Patient        `json:"patient,omitempty"`
	PackageID         string          `json:"packageId"`
	Package           *Package        `json:"package,omitempty"`
	TotalSessions     int             `json:"totalSessions"`
	UsedSessions      int             `json:"usedSessions"`
	RemainingSessions int             `json:"remainingSessions"`
	Price             decimal.Decimal `json:"price"`
	PurchaseDate      time.Time       `json:"purchaseDate"`
	ExpiresAt         *time.Time      `json:"expiresAt,omitempty"`
	Status            string          `json:"status"`
	Notes             string          `json:"notes,omitempty"`
}

// Usable indica si quedan sesiones y el paquete está vigente en now.
func (p PatientPackage) Usable(now time.Time) bool {
	if p.Status != PatientPackageActive || p.RemainingSessions <= 0 {
		return false
	}
	return p.ExpiresAt == nil || !now.After(*p.ExpiresAt)
}

// PackageSession bitácora de sesiones consumidas.
type PackageSession struct {
	Base
	PatientPackageID string    `json:"patientPackageId"`
	PatientID        string    `json:"patientId"`
	AppointmentID    string    `json:"appointmentId,omitempty"`
	WorkerID         string    `json:"workerId,omitempty"`
	SessionNumber    int       `json:"sessionNumber"`
	Date             time.Time `json:"date"`
	Notes            string    `json:"notes,omitempty"`
}

// UseSessionInput solicitud de consumo de una sesión.
type UseSessionInput struct {
	AppointmentID string `json:"appointmentId,omitempty"`
	WorkerID      string `json:"workerId,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// SessionUseResult paquete actualizado y la sesión registrada (nil si la
// bitácora falló).
type SessionUseResult struct {
	PatientPackage PatientPackage  `json:"patientPackage"`
	Session        *PackageSession `json:"session,omitempty"`
}

// PatientPackageInput payload de creación. Si TotalSessions es 0 se toma del
// paquete al resolverlo en la capa de aplicación; aquí debe venir informado.
type PatientPackageInput struct {
	PatientID     string          `json:"patientId"`
	PackageID     string          `json:"packageId"`
	TotalSessions int             `json:"totalSessions"`
	Price         decimal.Decimal `json:"price"`
	PurchaseDate  time.Time       `json:"purchaseDate,omitempty"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Validate paciente, paquete y sesiones positivas.
func (in PatientPackageInput) Validate() error {
	if err := required("paquete_paciente", "patientId", in.PatientID); err != nil {
		return err
	}
	if err := required("paquete_paciente", "packageId", in.PackageID); err != nil {
		return err
	}
	if in.TotalSessions <= 0 {
		return positive("paquete_paciente", "totalSessions", decimal.NewFromInt(int64(in.TotalSessions)))
	}
	return nonNegative("paquete_paciente", "price", in.Price)
}

// Build materializa el paquete con todas las sesiones disponibles.
func (in PatientPackageInput) Build(id string, now time.Time) PatientPackage {
	return PatientPackage{
		Base:              newBase(id, now),
		PatientID:         in.PatientID,
		PackageID:         in.PackageID,
		TotalSessions:     in.TotalSessions,
		UsedSessions:      0,
		RemainingSessions: in.TotalSessions,
		Price:             in.Price,
		PurchaseDate:      orNow(in.PurchaseDate, now),
		ExpiresAt:         in.ExpiresAt,
		Status:            PatientPackageActive,
		Notes:             in.Notes,
	}
}

// PatientPackagePatch actualización parcial. Las sesiones solo cambian con UseSession.
type PatientPackagePatch struct {
	Status    *string    `json:"status,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Apply aplica los campos presentes.
func (p PatientPackagePatch) Apply(item *PatientPackage, now time.Time) {
	set(&item.Status, p.Status)
	if p.ExpiresAt != nil {
		item.ExpiresAt = p.ExpiresAt
	}
	set(&item.Notes, p.Notes)
	item.UpdatedAt = now
}
