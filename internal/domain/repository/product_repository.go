package repository

import (
	"context"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	CRUD[entity.Product, entity.ProductInput, entity.ProductPatch]
	// GetByCode devuelve (nil, nil) si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	GetByCategoryID(ctx context.Context, categoryID string) ([]entity.Product, error)
	GetActive(ctx context.Context) ([]entity.Product, error)
	// GetLowStock productos activos con stock <= stock mínimo.
	GetLowStock(ctx context.Context) ([]entity.Product, error)
}

// ProductCategoryRepository puerto de persistencia para ProductCategory.
type ProductCategoryRepository interface {
	CRUD[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch]
	GetActive(ctx context.Context) ([]entity.ProductCategory, error)
}

// ProductMovementRepository puerto de persistencia del kardex.
type ProductMovementRepository interface {
	CRUD[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch]
	GetByProductID(ctx context.Context, productID string) ([]entity.ProductMovement, error)
	GetByType(ctx context.Context, movementType string) ([]entity.ProductMovement, error)
	GetByDateRange(ctx context.Context, r domain.DateRange) ([]entity.ProductMovement, error)
}
