package inventory

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el body HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, workerID string, in dto.RegisterMovementRequest) (*entity.ProductMovement, error) {
	if in.WorkerID != "" {
		workerID = in.WorkerID
	}
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reason:    in.Reason,
		Reference: in.Reference,
		WorkerID:  workerID,
	})
}
