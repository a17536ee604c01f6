package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Ingresos (pagos completados)
	TodayIncome   decimal.Decimal    `json:"todayIncome"`
	MonthlyIncome entity.IncomeStats `json:"monthlyIncome"`

	// Ventas del punto de venta en el mes
	MonthlySales entity.SalesStats `json:"monthlySales"`

	// Agenda
	Appointments entity.AppointmentStats `json:"appointments"`

	// Productos en o bajo el stock mínimo
	LowStock []LowStockDTO `json:"lowStock"`

	DateLabel string `json:"dateLabel"` // ej: "Marzo 2025"
}

// LowStockDTO resumen de un producto a reponer.
type LowStockDTO struct {
	ProductID string `json:"productId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"minStock"`
}
