// Package entity contiene los registros del dominio de la clínica, sus payloads
// de creación (XInput) y de actualización parcial (XPatch).
//
// Las etiquetas JSON son camelCase: los mismos structs se persisten en el
// backend local y viajan por la API REST.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain"
)

// Entity registro con identificador estable.
type Entity interface {
	GetID() string
	GetCreatedAt() time.Time
}

// Input payload de creación de T (sin id ni timestamps).
type Input[T any] interface {
	Validate() error
	Build(id string, now time.Time) T
}

// Patch actualización parcial de T: solo aplica los campos presentes y refresca UpdatedAt.
type Patch[T any] interface {
	Apply(item *T, now time.Time)
}

// Base campos comunes a todas las entidades.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID devuelve el identificador.
func (b Base) GetID() string { return b.ID }

// GetCreatedAt devuelve la fecha de creación.
func (b Base) GetCreatedAt() time.Time { return b.CreatedAt }

func newBase(id string, now time.Time) Base {
	return Base{ID: id, CreatedAt: now, UpdatedAt: now}
}

// set copia v en dst si v no es nil.
func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

func required(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(entity, field, "es requerido", domain.ErrInvalidInput)
	}
	return nil
}

func nonNegative(entity, field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError(entity, field, "no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func positive(entity, field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return domain.NewValidationError(entity, field, "debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

func oneOf(entity, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return domain.NewValidationError(entity, field, "valor no permitido: "+value, domain.ErrInvalidInput)
}
