package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para Sale.
type SaleRepository interface {
	CRUD[entity.Sale, entity.SaleInput, entity.SalePatch]
	GetByPatientID(ctx context.Context, patientID string) ([]entity.Sale, error)
	GetByDateRange(ctx context.Context, r domain.DateRange) ([]entity.Sale, error)
	// GetStats excluye las ventas anuladas.
	GetStats(ctx context.Context, r domain.DateRange) (*entity.SalesStats, error)
}
