// Package analytics contiene el resumen del dashboard de la clínica.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

type result[T any] struct {
	v   T
	err error
}

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	payments     repository.PaymentRepository
	sales        repository.SaleRepository
	appointments repository.AppointmentRepository
	products     repository.ProductRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos *repository.Repositories) *DashboardUseCase {
	return &DashboardUseCase{
		payments:     repos.Payments,
		sales:        repos.Sales,
		appointments: repos.Appointments,
		products:     repos.Products,
		now:          time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco llamadas en paralelo; si alguna falla se devuelve el primer error en
// el orden de abajo:
//  1. GetIncomeStats(hoy)
//  2. GetIncomeStats(mes)
//  3. Sales.GetStats(mes)
//  4. Appointments.GetStats
//  5. Products.GetLowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	today := domain.DateRange{Start: todayStart, End: todayEnd}
	month := domain.DateRange{Start: monthStart, End: todayEnd}

	todayCh := make(chan result[*entity.IncomeStats], 1)
	monthCh := make(chan result[*entity.IncomeStats], 1)
	salesCh := make(chan result[*entity.SalesStats], 1)
	aptCh := make(chan result[*entity.AppointmentStats], 1)
	lowCh := make(chan result[[]entity.Product], 1)

	go func() {
		v, err := uc.payments.GetIncomeStats(ctx, today)
		todayCh <- result[*entity.IncomeStats]{v, err}
	}()
	go func() {
		v, err := uc.payments.GetIncomeStats(ctx, month)
		monthCh <- result[*entity.IncomeStats]{v, err}
	}()
	go func() {
		v, err := uc.sales.GetStats(ctx, month)
		salesCh <- result[*entity.SalesStats]{v, err}
	}()
	go func() {
		v, err := uc.appointments.GetStats(ctx)
		aptCh <- result[*entity.AppointmentStats]{v, err}
	}()
	go func() {
		v, err := uc.products.GetLowStock(ctx)
		lowCh <- result[[]entity.Product]{v, err}
	}()

	t, m, s, a, l := <-todayCh, <-monthCh, <-salesCh, <-aptCh, <-lowCh

	switch {
	case t.err != nil:
		return nil, fmt.Errorf("dashboard: ingresos de hoy: %w", t.err)
	case m.err != nil:
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", m.err)
	case s.err != nil:
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", s.err)
	case a.err != nil:
		return nil, fmt.Errorf("dashboard: citas: %w", a.err)
	case l.err != nil:
		return nil, fmt.Errorf("dashboard: stock bajo: %w", l.err)
	}

	low := make([]dto.LowStockDTO, 0, len(l.v))
	for _, p := range l.v {
		low = append(low, dto.LowStockDTO{ProductID: p.ID, Code: p.Code, Name: p.Name, Stock: p.Stock, MinStock: p.MinStock})
	}

	return &dto.DashboardSummaryDTO{
		TodayIncome:   t.v.Total.Round(2),
		MonthlyIncome: *m.v,
		MonthlySales:  *s.v,
		Appointments:  *a.v,
		LowStock:      low,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
