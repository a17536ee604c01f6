package local

import (
	"context"
	"fmt"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// Resetter colección que se puede resembrar o borrar.
type Resetter interface {
	Key() string
	Reset(ctx context.Context) error
	Clear(ctx context.Context) error
}

// Set repositorios locales de todas las entidades sobre el mismo store y el
// mismo registro de bloqueos.
type Set struct {
	Patients          *PatientRepository
	Workers           *WorkerRepository
	Appointments      *AppointmentRepository
	Products          *ProductRepository
	ProductCategories *ProductCategoryRepository
	ProductMovements  *ProductMovementRepository
	Payments          *PaymentRepository
	Sales             *SaleRepository
	Abonos            *AbonoRepository
	Packages          *PackageRepository
	PatientPackages   *PatientPackageRepository
}

// NewSet construye los once repositorios.
func NewSet(opts Options) *Set {
	opts = opts.withDefaults()
	return &Set{
		Patients:          NewPatientRepository(opts),
		Workers:           NewWorkerRepository(opts),
		Appointments:      NewAppointmentRepository(opts),
		Products:          NewProductRepository(opts),
		ProductCategories: NewProductCategoryRepository(opts),
		ProductMovements:  NewProductMovementRepository(opts),
		Payments:          NewPaymentRepository(opts),
		Sales:             NewSaleRepository(opts),
		Abonos:            NewAbonoRepository(opts),
		Packages:          NewPackageRepository(opts),
		PatientPackages:   NewPatientPackageRepository(opts),
	}
}

// Repositories expone el set como el agregado del dominio.
func (s *Set) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Patients:          s.Patients,
		Workers:           s.Workers,
		Appointments:      s.Appointments,
		Products:          s.Products,
		ProductCategories: s.ProductCategories,
		ProductMovements:  s.ProductMovements,
		Payments:          s.Payments,
		Sales:             s.Sales,
		Abonos:            s.Abonos,
		Packages:          s.Packages,
		PatientPackages:   s.PatientPackages,
	}
}

// Resetters todas las colecciones, en orden estable.
func (s *Set) Resetters() []Resetter {
	return []Resetter{
		s.Patients, s.Workers, s.Appointments, s.Products, s.ProductCategories,
		s.ProductMovements, s.Payments, s.Sales, s.Abonos, s.Packages, s.PatientPackages,
	}
}

// ResetAll resiembra todas las colecciones; se detiene en el primer error.
func (s *Set) ResetAll(ctx context.Context) error {
	for _, r := range s.Resetters() {
		if err := r.Reset(ctx); err != nil {
			return fmt.Errorf("reset %s: %w", r.Key(), err)
		}
	}
	return nil
}

// ClearAll borra todas las colecciones.
func (s *Set) ClearAll(ctx context.Context) error {
	for _, r := range s.Resetters() {
		if err := r.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", r.Key(), err)
		}
	}
	return nil
}
