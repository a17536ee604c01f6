package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// NewRepositories construye el agregado sobre un único cliente.
func NewRepositories(c *Client) *repository.Repositories {
	return &repository.Repositories{
		Patients:          NewPatientRepository(c),
		Workers:           NewWorkerRepository(c),
		Appointments:      NewAppointmentRepository(c),
		Products:          NewProductRepository(c),
		ProductCategories: NewProductCategoryRepository(c),
		ProductMovements:  NewProductMovementRepository(c),
		Payments:          NewPaymentRepository(c),
		Sales:             NewSaleRepository(c),
		Abonos:            NewAbonoRepository(c),
		Packages:          NewPackageRepository(c),
		PatientPackages:   NewPatientPackageRepository(c),
	}
}

func seg(v string) string { return "/" + url.PathEscape(v) }

// ── Pacientes y personal ──────────────────────────────────────────────────────

// PatientRepository /patient.
type PatientRepository struct {
	*Resource[entity.Patient, entity.PatientInput, entity.PatientPatch]
}

var _ repository.PatientRepository = (*PatientRepository)(nil)

// NewPatientRepository crea el repositorio remoto de pacientes.
func NewPatientRepository(c *Client) *PatientRepository {
	return &PatientRepository{newResource[entity.Patient, entity.PatientInput, entity.PatientPatch](c, "/patient", "paciente", decodePatient)}
}

// GetByDocumentNumber GET /patient/document/:document.
func (r *PatientRepository) GetByDocumentNumber(ctx context.Context, documentNumber string) (*entity.Patient, error) {
	return r.one(ctx, "/document"+seg(documentNumber), nil)
}

// WorkerRepository /worker.
type WorkerRepository struct {
	*Resource[entity.Worker, entity.WorkerInput, entity.WorkerPatch]
}

var _ repository.WorkerRepository = (*WorkerRepository)(nil)

// NewWorkerRepository crea el repositorio remoto de trabajadores.
func NewWorkerRepository(c *Client) *WorkerRepository {
	return &WorkerRepository{newResource[entity.Worker, entity.WorkerInput, entity.WorkerPatch](c, "/worker", "trabajador", decodeWorker)}
}

// GetActive GET /worker/active.
func (r *WorkerRepository) GetActive(ctx context.Context) ([]entity.Worker, error) {
	return r.list(ctx, "/active", nil)
}

// GetByRole GET /worker/role/:role.
func (r *WorkerRepository) GetByRole(ctx context.Context, role string) ([]entity.Worker, error) {
	return r.list(ctx, "/role"+seg(role), nil)
}

// ── Citas ─────────────────────────────────────────────────────────────────────

// AppointmentRepository /appointment.
type AppointmentRepository struct {
	*Resource[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch]
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)

// NewAppointmentRepository crea el repositorio remoto de citas.
func NewAppointmentRepository(c *Client) *AppointmentRepository {
	return &AppointmentRepository{newResource[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch](c, "/appointment", "cita", decodeAppointment)}
}

// GetByPatientID GET /appointment/patient/:id.
func (r *AppointmentRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	return r.list(ctx, "/patient"+seg(patientID), nil)
}

// GetByWorkerID GET /appointment/worker/:id.
func (r *AppointmentRepository) GetByWorkerID(ctx context.Context, workerID string) ([]entity.Appointment, error) {
	return r.list(ctx, "/worker"+seg(workerID), nil)
}

// GetByStatus GET /appointment/status/:status.
func (r *AppointmentRepository) GetByStatus(ctx context.Context, status string) ([]entity.Appointment, error) {
	return r.list(ctx, "/status"+seg(status), nil)
}

// GetByDateRange GET /appointment/date-range?startDate&endDate.
func (r *AppointmentRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Appointment, error) {
	return r.list(ctx, "/date-range", rangeQuery(dr))
}

// GetStats GET /appointment/stats.
func (r *AppointmentRepository) GetStats(ctx context.Context) (*entity.AppointmentStats, error) {
	var stats entity.AppointmentStats
	if err := r.fetch(ctx, http.MethodGet, "/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ── Inventario ────────────────────────────────────────────────────────────────

// ProductRepository /product.
type ProductRepository struct {
	*Resource[entity.Product, entity.ProductInput, entity.ProductPatch]
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository crea el repositorio remoto de productos.
func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{newResource[entity.Product, entity.ProductInput, entity.ProductPatch](c, "/product", "producto", decodeProduct)}
}

// GetByCode GET /product/code/:code.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.one(ctx, "/code"+seg(code), nil)
}

// GetByCategoryID GET /product/category/:id.
func (r *ProductRepository) GetByCategoryID(ctx context.Context, categoryID string) ([]entity.Product, error) {
	return r.list(ctx, "/category"+seg(categoryID), nil)
}

// GetActive GET /product/active.
func (r *ProductRepository) GetActive(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, "/active", nil)
}

// GetLowStock GET /product/low-stock.
func (r *ProductRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, "/low-stock", nil)
}

// ProductCategoryRepository /product-category.
type ProductCategoryRepository struct {
	*Resource[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch]
}

var _ repository.ProductCategoryRepository = (*ProductCategoryRepository)(nil)

// NewProductCategoryRepository crea el repositorio remoto de categorías.
func NewProductCategoryRepository(c *Client) *ProductCategoryRepository {
	return &ProductCategoryRepository{newResource[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch](c, "/product-category", "categoría", decodeProductCategory)}
}

// GetActive GET /product-category/active.
func (r *ProductCategoryRepository) GetActive(ctx context.Context) ([]entity.ProductCategory, error) {
	return r.list(ctx, "/active", nil)
}

// ProductMovementRepository /product-movement.
type ProductMovementRepository struct {
	*Resource[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch]
}

var _ repository.ProductMovementRepository = (*ProductMovementRepository)(nil)

// NewProductMovementRepository crea el repositorio remoto del kardex.
func NewProductMovementRepository(c *Client) *ProductMovementRepository {
	return &ProductMovementRepository{newResource[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch](c, "/product-movement", "movimiento", decodeProductMovement)}
}

// GetByProductID GET /product-movement/product/:id.
func (r *ProductMovementRepository) GetByProductID(ctx context.Context, productID string) ([]entity.ProductMovement, error) {
	return r.list(ctx, "/product"+seg(productID), nil)
}

// GetByType GET /product-movement/type/:type.
func (r *ProductMovementRepository) GetByType(ctx context.Context, movementType string) ([]entity.ProductMovement, error) {
	return r.list(ctx, "/type"+seg(movementType), nil)
}

// GetByDateRange GET /product-movement/date-range.
func (r *ProductMovementRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.ProductMovement, error) {
	return r.list(ctx, "/date-range", rangeQuery(dr))
}

// ── Caja ──────────────────────────────────────────────────────────────────────

// PaymentRepository /payment.
type PaymentRepository struct {
	*Resource[entity.Payment, entity.PaymentInput, entity.PaymentPatch]
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository crea el repositorio remoto de pagos.
func NewPaymentRepository(c *Client) *PaymentRepository {
	return &PaymentRepository{newResource[entity.Payment, entity.PaymentInput, entity.PaymentPatch](c, "/payment", "pago", decodePayment)}
}

// GetByPatientID GET /payment/patient/:id.
func (r *PaymentRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Payment, error) {
	return r.list(ctx, "/patient"+seg(patientID), nil)
}

// GetByDateRange GET /payment/date-range.
func (r *PaymentRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Payment, error) {
	return r.list(ctx, "/date-range", rangeQuery(dr))
}

// GetIncomeStats GET /payment/stats/income.
func (r *PaymentRepository) GetIncomeStats(ctx context.Context, dr domain.DateRange) (*entity.IncomeStats, error) {
	var stats entity.IncomeStats
	if err := r.fetch(ctx, http.MethodGet, "/stats/income", rangeQuery(dr), nil, &stats); err != nil {
		return nil, err
	}
	if stats.ByMethod == nil {
		stats.ByMethod = map[string]decimal.Decimal{}
	}
	return &stats, nil
}

// SaleRepository /sale.
type SaleRepository struct {
	*Resource[entity.Sale, entity.SaleInput, entity.SalePatch]
}

var _ repository.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository crea el repositorio remoto de ventas.
func NewSaleRepository(c *Client) *SaleRepository {
	return &SaleRepository{newResource[entity.Sale, entity.SaleInput, entity.SalePatch](c, "/sale", "venta", decodeSale)}
}

// GetByPatientID GET /sale/patient/:id.
func (r *SaleRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Sale, error) {
	return r.list(ctx, "/patient"+seg(patientID), nil)
}

// GetByDateRange GET /sale/date-range.
func (r *SaleRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Sale, error) {
	return r.list(ctx, "/date-range", rangeQuery(dr))
}

// GetStats GET /sale/stats.
func (r *SaleRepository) GetStats(ctx context.Context, dr domain.DateRange) (*entity.SalesStats, error) {
	var stats entity.SalesStats
	if err := r.fetch(ctx, http.MethodGet, "/stats", rangeQuery(dr), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ── Abonos y paquetes ─────────────────────────────────────────────────────────

// AbonoRepository /abono.
type AbonoRepository struct {
	*Resource[entity.Abono, entity.AbonoInput, entity.AbonoPatch]
}

var _ repository.AbonoRepository = (*AbonoRepository)(nil)

// NewAbonoRepository crea el repositorio remoto de abonos.
func NewAbonoRepository(c *Client) *AbonoRepository {
	return &AbonoRepository{newResource[entity.Abono, entity.AbonoInput, entity.AbonoPatch](c, "/abono", "abono", decodeAbono)}
}

// GetByPatientID GET /abono/patient/:id.
func (r *AbonoRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error) {
	return r.list(ctx, "/patient"+seg(patientID), nil)
}

// GetActiveByPatientID GET /abono/patient/:id/active.
func (r *AbonoRepository) GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error) {
	return r.list(ctx, "/patient"+seg(patientID)+"/active", nil)
}

// GetPatientBalance GET /abono/patient/:id/balance. Acepta data = número o {balance}.
func (r *AbonoRepository) GetPatientBalance(ctx context.Context, patientID string) (decimal.Decimal, error) {
	var raw json.RawMessage
	if err := r.fetch(ctx, http.MethodGet, "/patient"+seg(patientID)+"/balance", nil, nil, &raw); err != nil {
		return decimal.Zero, err
	}
	var obj struct {
		Balance *decimal.Decimal `json:"balance"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Balance != nil {
		return *obj.Balance, nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero, &domain.TransportError{Method: http.MethodGet, Path: r.path + "/patient/balance", Status: http.StatusOK, Message: "saldo con formato inesperado", Err: err}
	}
	return d, nil
}

// UseAbono POST /abono/:id/use.
func (r *AbonoRepository) UseAbono(ctx context.Context, id string, in entity.UseAbonoInput) (*entity.AbonoUseResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var wire struct {
		Abono json.RawMessage `json:"abono"`
		Usage json.RawMessage `json:"usage"`
	}
	env, err := r.send(ctx, http.MethodPost, seg(id)+"/use", nil, in, &wire)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, domain.NewNotFoundError(r.entity, id)
		}
		return nil, err
	}
	abono, err := r.decodeOne(wire.Abono)
	if err != nil {
		return nil, err
	}
	res := &entity.AbonoUseResult{Abono: *abono}
	if hasData(wire.Usage) {
		usage, err := decodeAbonoUsage(wire.Usage)
		if err != nil {
			return nil, &domain.TransportError{Method: http.MethodPost, Path: r.path + "/use", Status: http.StatusOK, Message: "uso con formato inesperado", Err: err}
		}
		res.Usage = &usage
	}
	return res, env.partialWrite()
}

// GetUsageHistory GET /abono/:id/usages.
func (r *AbonoRepository) GetUsageHistory(ctx context.Context, abonoID string) ([]entity.AbonoUsage, error) {
	env, err := r.client.data(ctx, http.MethodGet, r.path+seg(abonoID)+"/usages", nil, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return []entity.AbonoUsage{}, nil
		}
		return nil, r.mapError(err)
	}
	return decodeList(env.Data, decodeAbonoUsage)
}

// PackageRepository /package.
type PackageRepository struct {
	*Resource[entity.Package, entity.PackageInput, entity.PackagePatch]
}

var _ repository.PackageRepository = (*PackageRepository)(nil)

// NewPackageRepository crea el repositorio remoto de paquetes.
func NewPackageRepository(c *Client) *PackageRepository {
	return &PackageRepository{newResource[entity.Package, entity.PackageInput, entity.PackagePatch](c, "/package", "paquete", decodePackage)}
}

// GetActive GET /package/active.
func (r *PackageRepository) GetActive(ctx context.Context) ([]entity.Package, error) {
	return r.list(ctx, "/active", nil)
}

// PatientPackageRepository /patient-package.
type PatientPackageRepository struct {
	*Resource[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch]
}

var _ repository.PatientPackageRepository = (*PatientPackageRepository)(nil)

// NewPatientPackageRepository crea el repositorio remoto de paquetes de pacientes.
func NewPatientPackageRepository(c *Client) *PatientPackageRepository {
	return &PatientPackageRepository{newResource[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch](c, "/patient-package", "paquete_paciente", decodePatientPackage)}
}

// GetByPatientID GET /patient-package/patient/:id.
func (r *PatientPackageRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error) {
	return r.list(ctx, "/patient"+seg(patientID), nil)
}

// GetActiveByPatientID GET /patient-package/patient/:id/active.
func (r *PatientPackageRepository) GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.PatientPackage, error) {
	return r.list(ctx, "/patient"+seg(patientID)+"/active", nil)
}

// UseSession POST /patient-package/:id/use-session.
func (r *PatientPackageRepository) UseSession(ctx context.Context, id string, in entity.UseSessionInput) (*entity.SessionUseResult, error) {
	var wire struct {
		PatientPackage json.RawMessage `json:"patientPackage"`
		Session        json.RawMessage `json:"session"`
	}
	env, err := r.send(ctx, http.MethodPost, seg(id)+"/use-session", nil, in, &wire)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, domain.NewNotFoundError(r.entity, id)
		}
		return nil, err
	}
	pp, err := r.decodeOne(wire.PatientPackage)
	if err != nil {
		return nil, err
	}
	res := &entity.SessionUseResult{PatientPackage: *pp}
	if hasData(wire.Session) {
		session, err := decodePackageSession(wire.Session)
		if err != nil {
			return nil, &domain.TransportError{Method: http.MethodPost, Path: r.path + "/use-session", Status: http.StatusOK, Message: "sesión con formato inesperado", Err: err}
		}
		res.Session = &session
	}
	return res, env.partialWrite()
}

// GetSessionHistory GET /patient-package/:id/sessions.
func (r *PatientPackageRepository) GetSessionHistory(ctx context.Context, patientPackageID string) ([]entity.PackageSession, error) {
	env, err := r.client.data(ctx, http.MethodGet, r.path+seg(patientPackageID)+"/sessions", nil, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return []entity.PackageSession{}, nil
		}
		return nil, r.mapError(err)
	}
	return decodeList(env.Data, decodePackageSession)
}
