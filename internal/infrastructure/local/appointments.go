package local

import (
	"context"
	"time"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// AppointmentRepository citas sobre el blob store.
type AppointmentRepository struct {
	*Repository[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch]
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)

// NewAppointmentRepository crea el repositorio de citas.
func NewAppointmentRepository(opts Options) *AppointmentRepository {
	return &AppointmentRepository{NewRepository[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch](Schema[entity.Appointment]{
		Entity: "cita",
		Plural: "appointments",
		Searchable: func(a entity.Appointment) []string {
			fields := []string{a.Reason, a.Notes, a.Status}
			if a.Patient != nil {
				fields = append(fields, a.Patient.FullName())
			}
			if a.Worker != nil {
				fields = append(fields, a.Worker.FullName())
			}
			return fields
		},
		Field: func(a entity.Appointment, name string) (string, bool) {
			switch name {
			case "status":
				return a.Status, true
			case "patientId":
				return a.PatientID, true
			case "workerId":
				return a.WorkerID, true
			}
			return "", false
		},
		Date: func(a entity.Appointment) time.Time { return a.Date },
		Seed: seedAppointments,
	}, opts)}
}

// GetByPatientID citas del paciente.
func (r *AppointmentRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	return r.list(ctx, func(a entity.Appointment) bool { return a.PatientID == patientID })
}

// GetByWorkerID citas del trabajador.
func (r *AppointmentRepository) GetByWorkerID(ctx context.Context, workerID string) ([]entity.Appointment, error) {
	return r.list(ctx, func(a entity.Appointment) bool { return a.WorkerID == workerID })
}

// GetByStatus citas en un estado.
func (r *AppointmentRepository) GetByStatus(ctx context.Context, status string) ([]entity.Appointment, error) {
	return r.list(ctx, func(a entity.Appointment) bool { return a.Status == status })
}

// GetByDateRange citas con fecha en [Start, End].
func (r *AppointmentRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Appointment, error) {
	return r.listInRange(ctx, dr)
}

// GetStats cuenta por estado, las de hoy y las próximas pendientes.
func (r *AppointmentRepository) GetStats(ctx context.Context) (*entity.AppointmentStats, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	now := r.opts.Now()
	stats := &entity.AppointmentStats{Total: len(items)}
	for _, a := range items {
		switch a.Status {
		case entity.AppointmentScheduled:
			stats.Scheduled++
		case entity.AppointmentConfirmed:
			stats.Confirmed++
		case entity.AppointmentCompleted:
			stats.Completed++
		case entity.AppointmentCancelled:
			stats.Cancelled++
		case entity.AppointmentNoShow:
			stats.NoShow++
		}
		if sameDay(a.Date, now) {
			stats.Today++
		}
		pending := a.Status == entity.AppointmentScheduled || a.Status == entity.AppointmentConfirmed
		if pending && a.Date.After(now) {
			stats.Upcoming++
		}
	}
	return stats, nil
}
