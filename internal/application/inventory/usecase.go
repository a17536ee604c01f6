// Package inventory contiene el motor de movimientos del kardex.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/inventory"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas, salidas y ajustes: actualiza el
// stock del producto y agrega el registro al kardex. Los movimientos de un
// mismo producto se serializan dentro del proceso.
type RegisterMovementUseCase struct {
	products  repository.ProductRepository
	movements repository.ProductMovementRepository
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	products repository.ProductRepository,
	movements repository.ProductMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		products:  products,
		movements: movements,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// MovementInputDTO entrada de RegisterMovement.
// Entry y Exit usan Quantity > 0; Adjustment lleva el signo en Quantity.
// UnitCost en una entrada recalcula el costo promedio del producto.
type MovementInputDTO struct {
	ProductID string
	Type      string
	Quantity  int
	UnitCost  *decimal.Decimal
	Reason    string
	Reference string
	WorkerID  string
}

// RegisterMovement valida, aplica el cambio de stock y guarda el movimiento.
// Si el stock quedó actualizado pero el kardex falló, devuelve
// *domain.PartialWriteError.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInputDTO) (*entity.ProductMovement, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	unlock := uc.lock(in.ProductID)
	defer unlock()

	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("movimiento: obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.NewNotFoundError("producto", in.ProductID)
	}

	delta := in.Quantity
	if in.Type == entity.MovementExit {
		delta = -in.Quantity
	}
	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, domain.NewValidationError("movimiento", "quantity",
			fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", product.Stock, -delta), domain.ErrInsufficientStock)
	}

	patch := entity.ProductPatch{Stock: &newStock}
	if in.Type == entity.MovementEntry && in.UnitCost != nil {
		cost := inventory.CostCalculator(
			decimal.NewFromInt(int64(product.Stock)), product.Cost,
			decimal.NewFromInt(int64(in.Quantity)), *in.UnitCost,
		)
		patch.Cost = &cost
	}
	if _, err := uc.products.Update(ctx, product.ID, patch); err != nil {
		return nil, fmt.Errorf("movimiento: actualizar stock: %w", err)
	}

	mov, err := uc.movements.Create(ctx, entity.ProductMovementInput{
		ProductID:     product.ID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		PreviousStock: product.Stock,
		NewStock:      newStock,
		Reason:        in.Reason,
		Reference:     in.Reference,
		WorkerID:      in.WorkerID,
		Date:          uc.now(),
	})
	if err != nil {
		return nil, &domain.PartialWriteError{Applied: "stock actualizado", Err: err}
	}
	return mov, nil
}

// RegisterExit salida por venta; reference suele ser el id de la venta.
func (uc *RegisterMovementUseCase) RegisterExit(ctx context.Context, productID string, quantity int, reference, workerID string) (*entity.ProductMovement, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID: productID,
		Type:      entity.MovementExit,
		Quantity:  quantity,
		Reason:    "venta",
		Reference: reference,
		WorkerID:  workerID,
	})
}

func validate(in MovementInputDTO) error {
	if in.ProductID == "" {
		return domain.NewValidationError("movimiento", "productId", "es obligatorio", domain.ErrInvalidInput)
	}
	switch in.Type {
	case entity.MovementEntry, entity.MovementExit:
		if in.Quantity <= 0 {
			return domain.NewValidationError("movimiento", "quantity", "debe ser mayor que cero", domain.ErrInvalidInput)
		}
	case entity.MovementAdjustment:
		if in.Quantity == 0 {
			return domain.NewValidationError("movimiento", "quantity", "no puede ser cero", domain.ErrInvalidInput)
		}
	default:
		return domain.NewValidationError("movimiento", "type", "debe ser entry, exit o adjustment", domain.ErrInvalidInput)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.NewValidationError("movimiento", "unitCost", "no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *RegisterMovementUseCase) lock(productID string) func() {
	uc.mu.Lock()
	m, ok := uc.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		uc.locks[productID] = m
	}
	uc.mu.Unlock()
	m.Lock()
	return m.Unlock
}
