package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/application/inventory"
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/internal/infrastructure/blob"
	"github.com/jhoicas/podocare-api/internal/infrastructure/local"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newSet() *local.Set {
	return local.NewSet(local.Options{
		Store:   blob.NewMemory(),
		Latency: local.NoLatency{},
		Now:     func() time.Time { return testNow },
		Logger:  zerolog.Nop(),
	})
}

// brokenMovements falla al escribir el kardex.
type brokenMovements struct {
	repository.ProductMovementRepository
}

func (brokenMovements) Create(context.Context, entity.ProductMovementInput) (*entity.ProductMovement, error) {
	return nil, &domain.StorageError{Op: "escribir", Key: "movimientos", Err: errors.New("disco lleno")}
}

func TestRegisterMovement_EntradaRecalculaCosto(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)

	// prd-001: stock 24 a costo 18000.
	cost := decimal.NewFromInt(24000)
	mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: "prd-001", Type: entity.MovementEntry, Quantity: 6, UnitCost: &cost, Reference: "compra-7",
	})
	require.NoError(t, err)
	assert.Equal(t, 24, mov.PreviousStock)
	assert.Equal(t, 30, mov.NewStock)

	p, err := set.Products.GetByID(ctx, "prd-001")
	require.NoError(t, err)
	assert.Equal(t, 30, p.Stock)
	assert.True(t, decimal.NewFromInt(19200).Equal(p.Cost), "costo %s", p.Cost)

	history, err := set.ProductMovements.GetByProductID(ctx, "prd-001")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: "prd-002", Type: entity.MovementExit, Quantity: 4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrValidation)

	p, _ := set.Products.GetByID(ctx, "prd-002")
	assert.Equal(t, 3, p.Stock)
	history, _ := set.ProductMovements.GetByProductID(ctx, "prd-002")
	assert.Empty(t, history)
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)

	mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: "prd-003", Type: entity.MovementAdjustment, Quantity: -4, Reason: "conteo físico"})
	require.NoError(t, err)
	assert.Equal(t, 6, mov.NewStock)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: "prd-003", Type: entity.MovementAdjustment, Quantity: -7})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)

	cases := []inventory.MovementInputDTO{
		{Type: entity.MovementEntry, Quantity: 1},
		{ProductID: "prd-001", Type: "transfer", Quantity: 1},
		{ProductID: "prd-001", Type: entity.MovementExit, Quantity: 0},
		{ProductID: "prd-001", Type: entity.MovementAdjustment},
	}
	for _, in := range cases {
		_, err := uc.RegisterMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: "nope", Type: entity.MovementEntry, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_KardexFallido(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := inventory.NewRegisterMovementUseCase(set.Products, brokenMovements{set.ProductMovements})

	_, err := uc.RegisterExit(ctx, "prd-001", 1, "sale-1", "")
	var pw *domain.PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.ErrorIs(t, err, domain.ErrStorage)

	p, _ := set.Products.GetByID(ctx, "prd-001")
	assert.Equal(t, 23, p.Stock)
}

func TestRegisterExit_Concurrente(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	uc := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterExit(ctx, "prd-001", 2, "sale", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, _ := set.Products.GetByID(ctx, "prd-001")
	assert.Equal(t, 4, p.Stock)
	history, _ := set.ProductMovements.GetByProductID(ctx, "prd-001")
	assert.Len(t, history, 10)
}

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	set := newSet()
	movements := inventory.NewRegisterMovementUseCase(set.Products, set.ProductMovements)
	_, err := movements.RegisterExit(ctx, "prd-002", 1, "sale-1", "")
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(set.Products, set.ProductMovements).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	s := list[0]
	assert.Equal(t, "prd-002", s.ProductID)
	assert.Equal(t, 2, s.CurrentStock)
	assert.Equal(t, 8, s.IdealStock)
	assert.Equal(t, 6, s.SuggestedOrderQty)
	assert.Equal(t, 1, s.UnitsSoldLast90Days)
	assert.Equal(t, 1, s.Priority)
	assert.True(t, decimal.NewFromInt(75000).Equal(s.EstimatedOrderCost))
}
