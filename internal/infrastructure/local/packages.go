package local

import (
	"context"
	"time"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// PackageRepository catálogo de paquetes.
type PackageRepository struct {
	*Repository[entity.Package, entity.PackageInput, entity.PackagePatch]
}

var _ repository.PackageRepository = (*PackageRepository)(nil)

// NewPackageRepository crea el repositorio de paquetes.
func NewPackageRepository(opts Options) *PackageRepository {
	return &PackageRepository{NewRepository[entity.Package, entity.PackageInput, entity.PackagePatch](Schema[entity.Package]{
		Entity: "paquete",
		Plural: "packages",
		Searchable: func(p entity.Package) []string {
			return []string{p.Name, p.Description}
		},
		Field: func(p entity.Package, name string) (string, bool) {
			if name == "active" {
				return boolString(p.Active), true
			}
			return "", false
		},
		Seed: seedPackages,
	}, opts)}
}

// GetActive paquetes a la venta.
func (r *PackageRepository) GetActive(ctx context.Context) ([]entity.Package, error) {
	return r.list(ctx, func(p entity.Package) bool { return p.Active })
}

// PatientPackageRepository paquetes adquiridos y bitácora de sesiones
// (<prefix>_package_sessions).
type PatientPackageRepository struct {
	*Repository[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch]
	sessions collection[entity.PackageSession]
}

var _ repository.PatientPackageRepository = (*PatientPackageRepository)(nil)

// NewPatientPackageRepository crea el repositorio de paquetes de pacientes.
func NewPatientPackageRepository(opts Options) *PatientPackageRepository {
	base := NewRepository[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch](Schema[entity.PatientPackage]{
		Entity: "paquete_paciente",
		Plural: "patient_packages",
		Searchable: func(p entity.PatientPackage) []string {
			fields := []string{p.Status, p.Notes}
			if p.Patient != nil {
				fields = append(fields, p.Patient.FullName())
			}
			if p.Package != nil {
				fields = append(fields, p.Package.Name)
			}
			return fields
		},
		Field: func(p entity.PatientPackage, name string) (string, bool) {
			switch name {
			case "status":
				return p.Status, true
			case "patientId":
				return p.PatientID, true
			case "packageId":
				return p.PackageID, true
			}
			return "", false
		},
		Date: func(p entity.PatientPackage) time.Time { return p.PurchaseDate },
		Seed: seedPatientPackages,
	}, opts)
	return &PatientPackageRepository{
		Repository: base,
		sessions: collection[entity.PackageSession]{
			store: base.opts.Store,
			key:   base.opts.Key("package_sessions"),
			log:   base.col.log,
		},
	}
}

// GetByPatientID paquetes del paciente.
func (r *PatientPackageRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error) {
	return r.list(ctx, func(p entity.PatientPackage) bool { return p.PatientID == patientID })
}

// GetActiveByPatientID paquetes con sesiones disponibles y vigentes.
func (r *PatientPackageRepository) GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error) {
	now := r.opts.Now()
	return r.list(ctx, func(p entity.PatientPackage) bool { return p.PatientID == patientID && p.Usable(now) })
}

// UseSession consume una sesión. Misma semántica de doble escritura que UseAbono.
func (r *PatientPackageRepository) UseSession(ctx context.Context, id string, in entity.UseSessionInput) (*entity.SessionUseResult, error) {
	var updated entity.PatientPackage
	err := r.mutate(ctx, id, func(p *entity.PatientPackage) error {
		now := r.opts.Now()
		if p.RemainingSessions <= 0 {
			return domain.NewValidationError("paquete_paciente", "remainingSessions",
				"no quedan sesiones", domain.ErrNoSessionsLeft)
		}
		if !p.Usable(now) {
			return domain.NewValidationError("paquete_paciente", "status",
				"el paquete no está vigente (estado "+p.Status+")", domain.ErrConflict)
		}
		p.UsedSessions++
		p.RemainingSessions--
		if p.RemainingSessions == 0 {
			p.Status = entity.PatientPackageCompleted
		}
		p.UpdatedAt = now
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &entity.SessionUseResult{PatientPackage: updated}
	now := r.opts.Now()
	session := entity.PackageSession{
		Base:             entity.Base{ID: r.opts.NewID(now), CreatedAt: now, UpdatedAt: now},
		PatientPackageID: updated.ID,
		PatientID:        updated.PatientID,
		AppointmentID:    in.AppointmentID,
		WorkerID:         in.WorkerID,
		SessionNumber:    updated.UsedSessions,
		Date:             now,
		Notes:            in.Notes,
	}
	if err := appendTo(ctx, r.opts.Locks, r.sessions, session); err != nil {
		r.col.log.Error().Err(err).Str("patient_package_id", id).Msg("sesión descontada sin registro")
		return result, &domain.PartialWriteError{Applied: "sesión descontada del paquete", Err: err}
	}
	result.Session = &session
	return result, nil
}

// GetSessionHistory sesiones consumidas de un paquete, la más reciente primero.
func (r *PatientPackageRepository) GetSessionHistory(ctx context.Context, patientPackageID string) ([]entity.PackageSession, error) {
	if err := r.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}
	out := filterBy(r.sessions.load(ctx), func(s entity.PackageSession) bool { return s.PatientPackageID == patientPackageID })
	newestFirst(out, func(s entity.PackageSession) time.Time { return s.Date })
	return out, nil
}

// Reset resiembra paquetes y vacía la bitácora.
func (r *PatientPackageRepository) Reset(ctx context.Context) error {
	if err := r.Repository.Reset(ctx); err != nil {
		return err
	}
	unlock := r.opts.Locks.Lock(r.sessions.key)
	defer unlock()
	return r.sessions.reset(ctx)
}

// Clear borra paquetes y bitácora.
func (r *PatientPackageRepository) Clear(ctx context.Context) error {
	if err := r.Repository.Clear(ctx); err != nil {
		return err
	}
	unlock := r.opts.Locks.Lock(r.sessions.key)
	defer unlock()
	return r.sessions.clear(ctx)
}
