package hybrid

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// NewRepositories combina dos agregados completos (API y local) sobre un Gate.
func NewRepositories(remote, local *repository.Repositories, gate *Gate) *repository.Repositories {
	return &repository.Repositories{
		Patients:          &PatientRepository{newResource[entity.Patient, entity.PatientInput, entity.PatientPatch](remote.Patients, local.Patients, gate, "paciente"), remote.Patients, local.Patients},
		Workers:           &WorkerRepository{newResource[entity.Worker, entity.WorkerInput, entity.WorkerPatch](remote.Workers, local.Workers, gate, "trabajador"), remote.Workers, local.Workers},
		Appointments:      &AppointmentRepository{newResource[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch](remote.Appointments, local.Appointments, gate, "cita"), remote.Appointments, local.Appointments},
		Products:          &ProductRepository{newResource[entity.Product, entity.ProductInput, entity.ProductPatch](remote.Products, local.Products, gate, "producto"), remote.Products, local.Products},
		ProductCategories: &ProductCategoryRepository{newResource[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch](remote.ProductCategories, local.ProductCategories, gate, "categoría"), remote.ProductCategories, local.ProductCategories},
		ProductMovements:  &ProductMovementRepository{newResource[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch](remote.ProductMovements, local.ProductMovements, gate, "movimiento"), remote.ProductMovements, local.ProductMovements},
		Payments:          &PaymentRepository{newResource[entity.Payment, entity.PaymentInput, entity.PaymentPatch](remote.Payments, local.Payments, gate, "pago"), remote.Payments, local.Payments},
		Sales:             &SaleRepository{newResource[entity.Sale, entity.SaleInput, entity.SalePatch](remote.Sales, local.Sales, gate, "venta"), remote.Sales, local.Sales},
		Abonos:            &AbonoRepository{newResource[entity.Abono, entity.AbonoInput, entity.AbonoPatch](remote.Abonos, local.Abonos, gate, "abono"), remote.Abonos, local.Abonos},
		Packages:          &PackageRepository{newResource[entity.Package, entity.PackageInput, entity.PackagePatch](remote.Packages, local.Packages, gate, "paquete"), remote.Packages, local.Packages},
		PatientPackages:   &PatientPackageRepository{newResource[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch](remote.PatientPackages, local.PatientPackages, gate, "paquete_paciente"), remote.PatientPackages, local.PatientPackages},
	}
}

// PatientRepository pacientes.
type PatientRepository struct {
	*Resource[entity.Patient, entity.PatientInput, entity.PatientPatch]
	api, local repository.PatientRepository
}

func (r *PatientRepository) GetByDocumentNumber(ctx context.Context, documentNumber string) (*entity.Patient, error) {
	return call(ctx, r.gate, r.op("GetByDocumentNumber"),
		func() (*entity.Patient, error) { return r.api.GetByDocumentNumber(ctx, documentNumber) },
		func() (*entity.Patient, error) { return r.local.GetByDocumentNumber(ctx, documentNumber) })
}

// WorkerRepository trabajadores.
type WorkerRepository struct {
	*Resource[entity.Worker, entity.WorkerInput, entity.WorkerPatch]
	api, local repository.WorkerRepository
}

func (r *WorkerRepository) GetActive(ctx context.Context) ([]entity.Worker, error) {
	return call(ctx, r.gate, r.op("GetActive"),
		func() ([]entity.Worker, error) { return r.api.GetActive(ctx) },
		func() ([]entity.Worker, error) { return r.local.GetActive(ctx) })
}

func (r *WorkerRepository) GetByRole(ctx context.Context, role string) ([]entity.Worker, error) {
	return call(ctx, r.gate, r.op("GetByRole"),
		func() ([]entity.Worker, error) { return r.api.GetByRole(ctx, role) },
		func() ([]entity.Worker, error) { return r.local.GetByRole(ctx, role) })
}

// AppointmentRepository citas.
type AppointmentRepository struct {
	*Resource[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch]
	api, local repository.AppointmentRepository
}

func (r *AppointmentRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	return call(ctx, r.gate, r.op("GetByPatientID"),
		func() ([]entity.Appointment, error) { return r.api.GetByPatientID(ctx, patientID) },
		func() ([]entity.Appointment, error) { return r.local.GetByPatientID(ctx, patientID) })
}

func (r *AppointmentRepository) GetByWorkerID(ctx context.Context, workerID string) ([]entity.Appointment, error) {
	return call(ctx, r.gate, r.op("GetByWorkerID"),
		func() ([]entity.Appointment, error) { return r.api.GetByWorkerID(ctx, workerID) },
		func() ([]entity.Appointment, error) { return r.local.GetByWorkerID(ctx, workerID) })
}

func (r *AppointmentRepository) GetByStatus(ctx context.Context, status string) ([]entity.Appointment, error) {
	return call(ctx, r.gate, r.op("GetByStatus"),
		func() ([]entity.Appointment, error) { return r.api.GetByStatus(ctx, status) },
		func() ([]entity.Appointment, error) { return r.local.GetByStatus(ctx, status) })
}

func (r *AppointmentRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Appointment, error) {
	return call(ctx, r.gate, r.op("GetByDateRange"),
		func() ([]entity.Appointment, error) { return r.api.GetByDateRange(ctx, dr) },
		func() ([]entity.Appointment, error) { return r.local.GetByDateRange(ctx, dr) })
}

func (r *AppointmentRepository) GetStats(ctx context.Context) (*entity.AppointmentStats, error) {
	return call(ctx, r.gate, r.op("GetStats"),
		func() (*entity.AppointmentStats, error) { return r.api.GetStats(ctx) },
		func() (*entity.AppointmentStats, error) { return r.local.GetStats(ctx) })
}

// ProductRepository productos.
type ProductRepository struct {
	*Resource[entity.Product, entity.ProductInput, entity.ProductPatch]
	api, local repository.ProductRepository
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return call(ctx, r.gate, r.op("GetByCode"),
		func() (*entity.Product, error) { return r.api.GetByCode(ctx, code) },
		func() (*entity.Product, error) { return r.local.GetByCode(ctx, code) })
}

func (r *ProductRepository) GetByCategoryID(ctx context.Context, categoryID string) ([]entity.Product, error) {
	return call(ctx, r.gate, r.op("GetByCategoryID"),
		func() ([]entity.Product, error) { return r.api.GetByCategoryID(ctx, categoryID) },
		func() ([]entity.Product, error) { return r.local.GetByCategoryID(ctx, categoryID) })
}

func (r *ProductRepository) GetActive(ctx context.Context) ([]entity.Product, error) {
	return call(ctx, r.gate, r.op("GetActive"),
		func() ([]entity.Product, error) { return r.api.GetActive(ctx) },
		func() ([]entity.Product, error) { return r.local.GetActive(ctx) })
}

func (r *ProductRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return call(ctx, r.gate, r.op("GetLowStock"),
		func() ([]entity.Product, error) { return r.api.GetLowStock(ctx) },
		func() ([]entity.Product, error) { return r.local.GetLowStock(ctx) })
}

// ProductCategoryRepository categorías.
type ProductCategoryRepository struct {
	*Resource[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch]
	api, local repository.ProductCategoryRepository
}

func (r *ProductCategoryRepository) GetActive(ctx context.Context) ([]entity.ProductCategory, error) {
	return call(ctx, r.gate, r.op("GetActive"),
		func() ([]entity.ProductCategory, error) { return r.api.GetActive(ctx) },
		func() ([]entity.ProductCategory, error) { return r.local.GetActive(ctx) })
}

// ProductMovementRepository kardex.
type ProductMovementRepository struct {
	*Resource[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch]
	api, local repository.ProductMovementRepository
}

func (r *ProductMovementRepository) GetByProductID(ctx context.Context, productID string) ([]entity.ProductMovement, error) {
	return call(ctx, r.gate, r.op("GetByProductID"),
		func() ([]entity.ProductMovement, error) { return r.api.GetByProductID(ctx, productID) },
		func() ([]entity.ProductMovement, error) { return r.local.GetByProductID(ctx, productID) })
}

func (r *ProductMovementRepository) GetByType(ctx context.Context, movementType string) ([]entity.ProductMovement, error) {
	return call(ctx, r.gate, r.op("GetByType"),
		func() ([]entity.ProductMovement, error) { return r.api.GetByType(ctx, movementType) },
		func() ([]entity.ProductMovement, error) { return r.local.GetByType(ctx, movementType) })
}

func (r *ProductMovementRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.ProductMovement, error) {
	return call(ctx, r.gate, r.op("GetByDateRange"),
		func() ([]entity.ProductMovement, error) { return r.api.GetByDateRange(ctx, dr) },
		func() ([]entity.ProductMovement, error) { return r.local.GetByDateRange(ctx, dr) })
}

// PaymentRepository pagos.
type PaymentRepository struct {
	*Resource[entity.Payment, entity.PaymentInput, entity.PaymentPatch]
	api, local repository.PaymentRepository
}

func (r *PaymentRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Payment, error) {
	return call(ctx, r.gate, r.op("GetByPatientID"),
		func() ([]entity.Payment, error) { return r.api.GetByPatientID(ctx, patientID) },
		func() ([]entity.Payment, error) { return r.local.GetByPatientID(ctx, patientID) })
}

func (r *PaymentRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Payment, error) {
	return call(ctx, r.gate, r.op("GetByDateRange"),
		func() ([]entity.Payment, error) { return r.api.GetByDateRange(ctx, dr) },
		func() ([]entity.Payment, error) { return r.local.GetByDateRange(ctx, dr) })
}

func (r *PaymentRepository) GetIncomeStats(ctx context.Context, dr domain.DateRange) (*entity.IncomeStats, error) {
	return call(ctx, r.gate, r.op("GetIncomeStats"),
		func() (*entity.IncomeStats, error) { return r.api.GetIncomeStats(ctx, dr) },
		func() (*entity.IncomeStats, error) { return r.local.GetIncomeStats(ctx, dr) })
}

// SaleRepository ventas.
type SaleRepository struct {
	*Resource[entity.Sale, entity.SaleInput, entity.SalePatch]
	api, local repository.SaleRepository
}

func (r *SaleRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Sale, error) {
	return call(ctx, r.gate, r.op("GetByPatientID"),
		func() ([]entity.Sale, error) { return r.api.GetByPatientID(ctx, patientID) },
		func() ([]entity.Sale, error) { return r.local.GetByPatientID(ctx, patientID) })
}

func (r *SaleRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Sale, error) {
	return call(ctx, r.gate, r.op("GetByDateRange"),
		func() ([]entity.Sale, error) { return r.api.GetByDateRange(ctx, dr) },
		func() ([]entity.Sale, error) { return r.local.GetByDateRange(ctx, dr) })
}

func (r *SaleRepository) GetStats(ctx context.Context, dr domain.DateRange) (*entity.SalesStats, error) {
	return call(ctx, r.gate, r.op("GetStats"),
		func() (*entity.SalesStats, error) { return r.api.GetStats(ctx, dr) },
		func() (*entity.SalesStats, error) { return r.local.GetStats(ctx, dr) })
}

// AbonoRepository abonos.
type AbonoRepository struct {
	*Resource[entity.Abono, entity.AbonoInput, entity.AbonoPatch]
	api, local repository.AbonoRepository
}

func (r *AbonoRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error) {
	return call(ctx, r.gate, r.op("GetByPatientID"),
		func() ([]entity.Abono, error) { return r.api.GetByPatientID(ctx, patientID) },
		func() ([]entity.Abono, error) { return r.local.GetByPatientID(ctx, patientID) })
}

func (r *AbonoRepository) GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error) {
	return call(ctx, r.gate, r.op("GetActiveByPatientID"),
		func() ([]entity.Abono, error) { return r.api.GetActiveByPatientID(ctx, patientID) },
		func() ([]entity.Abono, error) { return r.local.GetActiveByPatientID(ctx, patientID) })
}

func (r *AbonoRepository) GetPatientBalance(ctx context.Context, patientID string) (decimal.Decimal, error) {
	return call(ctx, r.gate, r.op("GetPatientBalance"),
		func() (decimal.Decimal, error) { return r.api.GetPatientBalance(ctx, patientID) },
		func() (decimal.Decimal, error) { return r.local.GetPatientBalance(ctx, patientID) })
}

func (r *AbonoRepository) UseAbono(ctx context.Context, id string, in entity.UseAbonoInput) (*entity.AbonoUseResult, error) {
	return call(ctx, r.gate, r.op("UseAbono"),
		func() (*entity.AbonoUseResult, error) { return r.api.UseAbono(ctx, id, in) },
		func() (*entity.AbonoUseResult, error) { return r.local.UseAbono(ctx, id, in) })
}

func (r *AbonoRepository) GetUsageHistory(ctx context.Context, abonoID string) ([]entity.AbonoUsage, error) {
	return call(ctx, r.gate, r.op("GetUsageHistory"),
		func() ([]entity.AbonoUsage, error) { return r.api.GetUsageHistory(ctx, abonoID) },
		func() ([]entity.AbonoUsage, error) { return r.local.GetUsageHistory(ctx, abonoID) })
}

// PackageRepository paquetes.
type PackageRepository struct {
	*Resource[entity.Package, entity.PackageInput, entity.PackagePatch]
	api, local repository.PackageRepository
}

func (r *PackageRepository) GetActive(ctx context.Context) ([]entity.Package, error) {
	return call(ctx, r.gate, r.op("GetActive"),
		func() ([]entity.Package, error) { return r.api.GetActive(ctx) },
		func() ([]entity.Package, error) { return r.local.GetActive(ctx) })
}

// PatientPackageRepository paquetes de pacientes.
type PatientPackageRepository struct {
	*Resource[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch]
	api, local repository.PatientPackageRepository
}

func (r *PatientPackageRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error) {
	return call(ctx, r.gate, r.op("GetByPatientID"),
		func() ([]entity.PatientPackage, error) { return r.api.GetByPatientID(ctx, patientID) },
		func() ([]entity.PatientPackage, error) { return r.local.GetByPatientID(ctx, patientID) })
}

func (r *PatientPackageRepository) GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error) {
	return call(ctx, r.gate, r.op("GetActiveByPatientID"),
		func() ([]entity.PatientPackage, error) { return r.api.GetActiveByPatientID(ctx, patientID) },
		func() ([]entity.PatientPackage, error) { return r.local.GetActiveByPatientID(ctx, patientID) })
}

func (r *PatientPackageRepository) UseSession(ctx context.Context, id string, in entity.UseSessionInput) (*entity.SessionUseResult, error) {
	return call(ctx, r.gate, r.op("UseSession"),
		func() (*entity.SessionUseResult, error) { return r.api.UseSession(ctx, id, in) },
		func() (*entity.SessionUseResult, error) { return r.local.UseSession(ctx, id, in) })
}

func (r *PatientPackageRepository) GetSessionHistory(ctx context.Context, patientPackageID string) ([]entity.PackageSession, error) {
	return call(ctx, r.gate, r.op("GetSessionHistory"),
		func() ([]entity.PackageSession, error) { return r.api.GetSessionHistory(ctx, patientPackageID) },
		func() ([]entity.PackageSession, error) { return r.local.GetSessionHistory(ctx, patientPackageID) })
}

var (
	_ repository.PatientRepository         = (*PatientRepository)(nil)
	_ repository.WorkerRepository          = (*WorkerRepository)(nil)
	_ repository.AppointmentRepository     = (*AppointmentRepository)(nil)
	_ repository.ProductRepository         = (*ProductRepository)(nil)
	_ repository.ProductCategoryRepository = (*ProductCategoryRepository)(nil)
	_ repository.ProductMovementRepository = (*ProductMovementRepository)(nil)
	_ repository.PaymentRepository         = (*PaymentRepository)(nil)
	_ repository.SaleRepository            = (*SaleRepository)(nil)
	_ repository.AbonoRepository           = (*AbonoRepository)(nil)
	_ repository.PackageRepository         = (*PackageRepository)(nil)
	_ repository.PatientPackageRepository  = (*PatientPackageRepository)(nil)
)
