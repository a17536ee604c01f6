package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// PackageRepository puerto de persistencia del catálogo de paquetes.
type PackageRepository interface {
	CRUD[entity.Package, entity.PackageInput, entity.PackagePatch]
	GetActive(ctx context.Context) ([]entity.Package, error)
}

// PatientPackageRepository puerto de persistencia de paquetes adquiridos.
type PatientPackageRepository interface {
	CRUD[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch]
	GetByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error)
	GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error)
	// UseSession consume una sesión; misma semántica de escritura parcial que UseAbono.
	UseSession(ctx context.Context, id string, in entity.UseSessionInput) (*entity.SessionUseResult, error)
	GetSessionHistory(ctx context.Context, patientPackageID string) ([]entity.PackageSession, error)
}
