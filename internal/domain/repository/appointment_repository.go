package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// AppointmentRepository puerto de persistencia para Appointment.
type AppointmentRepository interface {
	CRUD[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch]
	GetByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error)
	GetByWorkerID(ctx context.Context, workerID string) ([]entity.Appointment, error)
	GetByStatus(ctx context.Context, status string) ([]entity.Appointment, error)
	// GetByDateRange incluye ambos extremos.
	GetByDateRange(ctx context.Context, r domain.DateRange) ([]entity.Appointment, error)
	GetStats(ctx context.Context) (*entity.AppointmentStats, error)
}
