package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// PatientRepository puerto de persistencia para Patient.
type PatientRepository interface {
	CRUD[entity.Patient, entity.PatientInput, entity.PatientPatch]
	// GetByDocumentNumber devuelve (nil, nil) si no hay paciente con ese documento.
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*entity.Patient, error)
}
