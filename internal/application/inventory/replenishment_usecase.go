package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

const replenishmentWindowDays = 90

// ReplenishmentUseCase lista de reposición: productos en o bajo el stock
// mínimo, priorizados por margen y por salidas recientes.
type ReplenishmentUseCase struct {
	products  repository.ProductRepository
	movements repository.ProductMovementRepository
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	products repository.ProductRepository,
	movements repository.ProductMovementRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products, movements: movements, now: time.Now}
}

// GenerateReplenishmentList sugiere pedir hasta 1.5 veces el stock mínimo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.products.GetLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: productos bajo mínimo: %w", err)
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	end := uc.now()
	window := domain.DateRange{Start: end.AddDate(0, 0, -replenishmentWindowDays), End: end}
	movs, err := uc.movements.GetByDateRange(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("reposición: movimientos: %w", err)
	}
	sold := make(map[string]int, len(low))
	for _, m := range movs {
		if m.Type == entity.MovementExit {
			sold[m.ProductID] += m.Quantity
		}
	}

	hundred := decimal.NewFromInt(100)
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		ideal := int(decimal.NewFromInt(int64(p.MinStock)).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart())
		suggested := ideal - p.Stock
		if suggested < 0 {
			suggested = 0
		}
		margin := decimal.Zero
		if p.Price.IsPositive() {
			margin = p.Price.Sub(p.Cost).Div(p.Price).Mul(hundred).Round(2)
		}
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:           p.ID,
			Code:                p.Code,
			ProductName:         p.Name,
			CurrentStock:        p.Stock,
			MinStock:            p.MinStock,
			IdealStock:          ideal,
			SuggestedOrderQty:   suggested,
			UnitCost:            p.Cost,
			EstimatedOrderCost:  p.Cost.Mul(decimal.NewFromInt(int64(suggested))),
			GrossMarginPct:      margin,
			UnitsSoldLast90Days: sold[p.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSoldLast90Days != b.UnitsSoldLast90Days {
			return a.UnitsSoldLast90Days > b.UnitsSoldLast90Days
		}
		return a.MinStock-a.CurrentStock > b.MinStock-b.CurrentStock
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
