package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package paquete de sesiones ofrecido por la clínica.
type Package struct {
	Base
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Sessions     int             `json:"sessions"`
	Price        decimal.Decimal `json:"price"`
	ValidityDays int             `json:"validityDays"` // 0 = sin vencimiento
	Active       bool            `json:"active"`
}

// PackageInput payload de creación.
type PackageInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Sessions     int             `json:"sessions"`
	Price        decimal.Decimal `json:"price"`
	ValidityDays int             `json:"validityDays"`
	Active       *bool           `json:"active,omitempty"`
}

// Validate nombre, sesiones positivas y precio no negativo.
func (in PackageInput) Validate() error {
	if err := required("paquete", "name", in.Name); err != nil {
		return err
	}
	if in.Sessions <= 0 {
		return positive("paquete", "sessions", decimal.NewFromInt(int64(in.Sessions)))
	}
	return nonNegative("paquete", "price", in.Price)
}

// Build materializa el paquete.
func (in PackageInput) Build(id string, now time.Time) Package {
	active := true
	set(&active, in.Active)
	return Package{
		Base:         newBase(id, now),
		Name:         in.Name,
		Description:  in.Description,
		Sessions:     in.Sessions,
		Price:        in.Price,
		ValidityDays: in.ValidityDays,
		Active:       active,
	}
}

// PackagePatch actualización parcial.
type PackagePatch struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Sessions     *int             `json:"sessions,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	ValidityDays *int             `json:"validityDays,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// Apply aplica los campos presentes.
func (p PackagePatch) Apply(item *Package, now time.Time) {
	set(&item.Name, p.Name)
	set(&item.Description, p.Description)
	set(&item.Sessions, p.Sessions)
	set(&item.Price, p.Price)
	set(&item.ValidityDays, p.ValidityDays)
	set(&item.Active, p.Active)
	item.UpdatedAt = now
}
