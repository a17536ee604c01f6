package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para Payment.
type PaymentRepository interface {
	CRUD[entity.Payment, entity.PaymentInput, entity.PaymentPatch]
	GetByPatientID(ctx context.Context, patientID string) ([]entity.Payment, error)
	GetByDateRange(ctx context.Context, r domain.DateRange) ([]entity.Payment, error)
	// GetIncomeStats agrega los pagos completados del rango.
	GetIncomeStats(ctx context.Context, r domain.DateRange) (*entity.IncomeStats, error)
}
