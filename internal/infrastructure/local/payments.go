package local

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// PaymentRepository pagos recibidos.
type PaymentRepository struct {
	*Repository[entity.Payment, entity.PaymentInput, entity.PaymentPatch]
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository crea el repositorio de pagos.
func NewPaymentRepository(opts Options) *PaymentRepository {
	return &PaymentRepository{NewRepository[entity.Payment, entity.PaymentInput, entity.PaymentPatch](Schema[entity.Payment]{
		Entity: "pago",
		Plural: "payments",
		Searchable: func(p entity.Payment) []string {
			fields := []string{p.Method, p.Status, p.Notes}
			if p.Patient != nil {
				fields = append(fields, p.Patient.FullName())
			}
			return fields
		},
		Field: func(p entity.Payment, name string) (string, bool) {
			switch name {
			case "method":
				return p.Method, true
			case "status":
				return p.Status, true
			case "patientId":
				return p.PatientID, true
			}
			return "", false
		},
		Date: func(p entity.Payment) time.Time { return p.Date },
		Seed: seedPayments,
	}, opts)}
}

// GetByPatientID pagos del paciente.
func (r *PaymentRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Payment, error) {
	return r.list(ctx, func(p entity.Payment) bool { return p.PatientID == patientID })
}

// GetByDateRange pagos con fecha en [Start, End].
func (r *PaymentRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Payment, error) {
	return r.listInRange(ctx, dr)
}

// GetIncomeStats suma los pagos completados del rango, total y por método.
func (r *PaymentRepository) GetIncomeStats(ctx context.Context, dr domain.DateRange) (*entity.IncomeStats, error) {
	payments, err := r.listInRange(ctx, dr)
	if err != nil {
		return nil, err
	}
	return IncomeStats(payments), nil
}

// IncomeStats agrega una lista de pagos (solo completados).
func IncomeStats(payments []entity.Payment) *entity.IncomeStats {
	stats := &entity.IncomeStats{
		Total:    decimal.Zero,
		ByMethod: make(map[string]decimal.Decimal),
		Average:  decimal.Zero,
	}
	for _, p := range payments {
		if p.Status != entity.PaymentCompleted {
			continue
		}
		stats.Total = stats.Total.Add(p.Amount)
		stats.ByMethod[p.Method] = stats.ByMethod[p.Method].Add(p.Amount)
		stats.Count++
	}
	if stats.Count > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	}
	return stats
}

// SaleRepository ventas del punto de venta.
type SaleRepository struct {
	*Repository[entity.Sale, entity.SaleInput, entity.SalePatch]
}

var _ repository.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository crea el repositorio de ventas.
func NewSaleRepository(opts Options) *SaleRepository {
	return &SaleRepository{NewRepository[entity.Sale, entity.SaleInput, entity.SalePatch](Schema[entity.Sale]{
		Entity: "venta",
		Plural: "sales",
		Searchable: func(s entity.Sale) []string {
			fields := []string{s.Notes, s.PaymentMethod, s.Status}
			for _, it := range s.Items {
				fields = append(fields, it.ProductName)
			}
			if s.Patient != nil {
				fields = append(fields, s.Patient.FullName())
			}
			return fields
		},
		Field: func(s entity.Sale, name string) (string, bool) {
			switch name {
			case "status":
				return s.Status, true
			case "paymentMethod":
				return s.PaymentMethod, true
			case "patientId":
				return s.PatientID, true
			case "workerId":
				return s.WorkerID, true
			}
			return "", false
		},
		Date: func(s entity.Sale) time.Time { return s.Date },
	}, opts)}
}

// GetByPatientID ventas del paciente.
func (r *SaleRepository) GetByPatientID(ctx context.Context, patientID string) ([]entity.Sale, error) {
	return r.list(ctx, func(s entity.Sale) bool { return s.PatientID == patientID })
}

// GetByDateRange ventas con fecha en [Start, End].
func (r *SaleRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.Sale, error) {
	return r.listInRange(ctx, dr)
}

// GetStats resumen del rango sin ventas anuladas.
func (r *SaleRepository) GetStats(ctx context.Context, dr domain.DateRange) (*entity.SalesStats, error) {
	sales, err := r.listInRange(ctx, dr)
	if err != nil {
		return nil, err
	}
	return SalesStats(sales), nil
}

// SalesStats agrega una lista de ventas.
func SalesStats(sales []entity.Sale) *entity.SalesStats {
	stats := &entity.SalesStats{Total: decimal.Zero, AverageTicket: decimal.Zero}
	for _, s := range sales {
		if s.Status == entity.SaleCancelled {
			continue
		}
		stats.Count++
		stats.Total = stats.Total.Add(s.Total)
		for _, it := range s.Items {
			stats.ItemsSold += it.Quantity
		}
	}
	if stats.Count > 0 {
		stats.AverageTicket = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	}
	return stats
}
