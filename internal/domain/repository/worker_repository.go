package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// WorkerRepository puerto de persistencia para Worker.
type WorkerRepository interface {
	CRUD[entity.Worker, entity.WorkerInput, entity.WorkerPatch]
	GetActive(ctx context.Context) ([]entity.Worker, error)
	GetByRole(ctx context.Context, role string) ([]entity.Worker, error)
}
