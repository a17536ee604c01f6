package local

import (
	"context"
	"time"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// PatientRepository pacientes sobre el blob store.
type PatientRepository struct {
	*Repository[entity.Patient, entity.PatientInput, entity.PatientPatch]
}

var _ repository.PatientRepository = (*PatientRepository)(nil)

// NewPatientRepository crea el repositorio de pacientes.
func NewPatientRepository(opts Options) *PatientRepository {
	return &PatientRepository{NewRepository[entity.Patient, entity.PatientInput, entity.PatientPatch](Schema[entity.Patient]{
		Entity: "paciente",
		Plural: "patients",
		Searchable: func(p entity.Patient) []string {
			return []string{p.FirstName, p.LastName, p.FullName(), p.DocumentNumber, p.Phone, p.Email}
		},
		Field: func(p entity.Patient, name string) (string, bool) {
			switch name {
			case "documentType":
				return p.DocumentType, true
			case "documentNumber":
				return p.DocumentNumber, true
			}
			return "", false
		},
		Unique: func(p entity.Patient) string { return p.DocumentNumber },
		Seed:   seedPatients,
	}, opts)}
}

// GetByDocumentNumber (nil, nil) si no existe.
func (r *PatientRepository) GetByDocumentNumber(ctx context.Context, documentNumber string) (*entity.Patient, error) {
	return r.findOne(ctx, func(p entity.Patient) bool { return p.DocumentNumber == documentNumber })
}

// WorkerRepository personal de la clínica.
type WorkerRepository struct {
	*Repository[entity.Worker, entity.WorkerInput, entity.WorkerPatch]
}

var _ repository.WorkerRepository = (*WorkerRepository)(nil)

// NewWorkerRepository crea el repositorio de trabajadores.
func NewWorkerRepository(opts Options) *WorkerRepository {
	return &WorkerRepository{NewRepository[entity.Worker, entity.WorkerInput, entity.WorkerPatch](Schema[entity.Worker]{
		Entity: "trabajador",
		Plural: "workers",
		Searchable: func(w entity.Worker) []string {
			return []string{w.FirstName, w.LastName, w.FullName(), w.DocumentNumber, w.Role, w.Specialty}
		},
		Field: func(w entity.Worker, name string) (string, bool) {
			switch name {
			case "role":
				return w.Role, true
			case "active":
				return boolString(w.Active), true
			}
			return "", false
		},
		Seed: seedWorkers,
	}, opts)}
}

// GetActive trabajadores activos.
func (r *WorkerRepository) GetActive(ctx context.Context) ([]entity.Worker, error) {
	return r.list(ctx, func(w entity.Worker) bool { return w.Active })
}

// GetByRole trabajadores de un rol.
func (r *WorkerRepository) GetByRole(ctx context.Context, role string) ([]entity.Worker, error) {
	return r.list(ctx, func(w entity.Worker) bool { return w.Role == role })
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
