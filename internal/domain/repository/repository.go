// Package repository define los puertos de persistencia del dominio (DIP).
// Las implementaciones viven en infrastructure: local (blob store), api (REST)
// e hybrid (API con respaldo local).
package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// CRUD contrato común a todos los repositorios.
//   - GetByID devuelve (nil, nil) cuando el registro no existe.
//   - Update y Delete devuelven *domain.NotFoundError cuando no existe.
//   - Create valida el payload antes de escribir (*domain.ValidationError).
type CRUD[T any, C any, U any] interface {
	GetAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id string, patch U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Repositories agrega un repositorio por entidad. Se construye una sola vez
// por configuración (ver factory.New) y no se modifica después.
type Repositories struct {
	Patients          PatientRepository
	Workers           WorkerRepository
	Appointments      AppointmentRepository
	Products          ProductRepository
	ProductCategories ProductCategoryRepository
	ProductMovements  ProductMovementRepository
	Payments          PaymentRepository
	Sales             SaleRepository
	Abonos            AbonoRepository
	Packages          PackageRepository
	PatientPackages   PatientPackageRepository
}
