package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// AbonoRepository puerto de persistencia para Abono y su bitácora de usos.
type AbonoRepository interface {
	CRUD[entity.Abono, entity.AbonoInput, entity.AbonoPatch]
	GetByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error)
	// GetActiveByPatientID abonos activos, con saldo y sin vencer.
	GetActiveByPatientID(ctx context.Context, patientID string) ([]entity.Abono, error)
	// GetPatientBalance suma los saldos de los abonos activos del paciente.
	GetPatientBalance(ctx context.Context, patientID string) (decimal.Decimal, error)
	// UseAbono descuenta in.Amount del saldo y registra el uso.
	// Si el saldo se actualizó pero la bitácora falló, devuelve el resultado
	// junto con un *domain.PartialWriteError.
	UseAbono(ctx context.Context, id string, in entity.UseAbonoInput) (*entity.AbonoUseResult, error)
	GetUsageHistory(ctx context.Context, abonoID string) ([]entity.AbonoUsage, error)
}
