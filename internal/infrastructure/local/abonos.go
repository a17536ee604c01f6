package local

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// AbonoRepository abonos y su bitácora de usos (<prefix>_abono_usages).
type AbonoRepository struct {
	*Repository[entity.Abono, entity.AbonoInput, entity.AbonoPatch]
	usages collection[entity.AbonoUsage]
}

var _ repository.AbonoRepository = (*AbonoRepository)(nil)

// NewAbonoRepository crea el repositorio de abonos.
func NewAbonoRepository(opts Options) *AbonoRepository {
	base := NewRepository[entity.Abono, entity.AbonoInput, entity.AbonoPatch](Schema[entity.Abono]{
		Entity: "abono",
		Plural: "abonos",
		Searchable: func(a entity.Abono) []string {
			fields := []string{a.Status, a.PaymentMethod, a.Notes}
			if a.Patient != nil {
				fields = append(fields, a.Patient.FullName())
			}
			return fields
		},
		Field: func(a entity.Abono, name string) (string, bool) {
			switch name {
			case "status":
				return a.Status, true
			case "patientId":
				return a.PatientID, true
			}
			return "", false
		},
		Date: func(a entity.Abono) time.Time { return a.Date },
		Seed: seedAbonos,
	}, opts)
	return &AbonoRepository{
		Repository: base,
		usages: collection[entity.AbonoUsage]{
			store: base.opts.Store,
			key:   base.opts.Key("abono_usages"),
			log:   base.col.log,
		},
	}
}

// GetByPatientID abonos del paciente.
func (r *AbonoRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error) {
	return r.list(ctx, func(a entity.Abono) bool { return a.PatientID == patientID })
}

// GetActiveByPatientID abonos utilizables hoy.
func (r *AbonoRepository) GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error) {
	now := r.opts.Now()
	return r.list(ctx, func(a entity.Abono) bool { return a.PatientID == patientID && a.Usable(now) })
}

// GetPatientBalance suma el saldo de los abonos utilizables.
func (r *AbonoRepository) GetPatientBalance(ctx context.Context, patientID string) (decimal.Decimal, error) {
	active, err := r.GetActiveByPatientID(ctx, patientID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range active {
		total = total.Add(a.RemainingAmount)
	}
	return total, nil
}

// UseAbono descuenta el monto bajo el bloqueo de la colección. La bitácora
// se escribe después, en una segunda escritura independiente.
func (r *AbonoRepository) UseAbono(ctx context.Context, id string, in entity.UseAbonoInput) (*entity.AbonoUseResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var updated entity.Abono
	err := r.mutate(ctx, id, func(a *entity.Abono) error {
		now := r.opts.Now()
		if !a.Usable(now) {
			return domain.NewValidationError("abono", "status",
				fmt.Sprintf("el abono no está disponible (estado %s)", a.Status), domain.ErrConflict)
		}
		if in.Amount.GreaterThan(a.RemainingAmount) {
			return domain.NewValidationError("abono", "amount",
				"saldo disponible "+a.RemainingAmount.StringFixed(2), domain.ErrInsufficientBalance)
		}
		a.RemainingAmount = a.RemainingAmount.Sub(in.Amount)
		if a.RemainingAmount.IsZero() {
			a.Status = entity.AbonoUsed
		}
		a.UpdatedAt = now
		updated = *a
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &entity.AbonoUseResult{Abono: updated}
	now := r.opts.Now()
	usage := entity.AbonoUsage{
		Base:          entity.Base{ID: r.opts.NewID(now), CreatedAt: now, UpdatedAt: now},
		AbonoID:       updated.ID,
		PatientID:     updated.PatientID,
		Amount:        in.Amount,
		AppointmentID: in.AppointmentID,
		SaleID:        in.SaleID,
		Description:   in.Description,
		Date:          now,
	}
	if err := appendTo(ctx, r.opts.Locks, r.usages, usage); err != nil {
		r.col.log.Error().Err(err).Str("abono_id", id).Msg("saldo actualizado sin registro de uso")
		return result, &domain.PartialWriteError{Applied: "saldo del abono actualizado", Err: err}
	}
	result.Usage = &usage
	return result, nil
}

// GetUsageHistory usos de un abono, el más reciente primero.
func (r *AbonoRepository) GetUsageHistory(ctx context.Context, abonoID string) ([]entity.AbonoUsage, error) {
	if err := r.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}
	out := filterBy(r.usages.load(ctx), func(u entity.AbonoUsage) bool { return u.AbonoID == abonoID })
	newestFirst(out, func(u entity.AbonoUsage) time.Time { return u.Date })
	return out, nil
}

// Reset resiembra abonos y vacía la bitácora.
func (r *AbonoRepository) Reset(ctx context.Context) error {
	if err := r.Repository.Reset(ctx); err != nil {
		return err
	}
	unlock := r.opts.Locks.Lock(r.usages.key)
	defer unlock()
	return r.usages.reset(ctx)
}

// Clear borra abonos y bitácora.
func (r *AbonoRepository) Clear(ctx context.Context) error {
	if err := r.Repository.Clear(ctx); err != nil {
		return err
	}
	unlock := r.opts.Locks.Lock(r.usages.key)
	defer unlock()
	return r.usages.clear(ctx)
}

// appendTo agrega un registro a una bitácora bajo su propio bloqueo.
func appendTo[T any](ctx context.Context, locks *KeyLocks, c collection[T], item T) error {
	unlock := locks.Lock(c.key)
	defer unlock()
	items, err := c.loadForWrite(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(items, item))
}
