package local

import (
	"context"
	"time"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// ProductRepository productos del punto de venta.
type ProductRepository struct {
	*Repository[entity.Product, entity.ProductInput, entity.ProductPatch]
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository crea el repositorio de productos. El código es único.
func NewProductRepository(opts Options) *ProductRepository {
	return &ProductRepository{NewRepository[entity.Product, entity.ProductInput, entity.ProductPatch](Schema[entity.Product]{
		Entity: "producto",
		Plural: "products",
		Searchable: func(p entity.Product) []string {
			return []string{p.Name, p.Code, p.Description}
		},
		Field: func(p entity.Product, name string) (string, bool) {
			switch name {
			case "categoryId":
				return p.CategoryID, true
			case "code":
				return p.Code, true
			case "active":
				return boolString(p.Active), true
			}
			return "", false
		},
		Unique: func(p entity.Product) string { return p.Code },
		Seed:   seedProducts,
	}, opts)}
}

// GetByCode (nil, nil) si no existe.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.findOne(ctx, func(p entity.Product) bool { return equalFold(p.Code, code) })
}

// GetByCategoryID productos de una categoría.
func (r *ProductRepository) GetByCategoryID(ctx context.Context, categoryID string) ([]entity.Product, error) {
	return r.list(ctx, func(p entity.Product) bool { return p.CategoryID == categoryID })
}

// GetActive productos activos.
func (r *ProductRepository) GetActive(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, func(p entity.Product) bool { return p.Active })
}

// GetLowStock productos activos en o por debajo del stock mínimo.
func (r *ProductRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, func(p entity.Product) bool { return p.Active && p.LowStock() })
}

// ProductCategoryRepository categorías de producto.
type ProductCategoryRepository struct {
	*Repository[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch]
}

var _ repository.ProductCategoryRepository = (*ProductCategoryRepository)(nil)

// NewProductCategoryRepository crea el repositorio de categorías.
func NewProductCategoryRepository(opts Options) *ProductCategoryRepository {
	return &ProductCategoryRepository{NewRepository[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch](Schema[entity.ProductCategory]{
		Entity: "categoría",
		Plural: "product_categories",
		Searchable: func(c entity.ProductCategory) []string {
			return []string{c.Name, c.Description}
		},
		Field: func(c entity.ProductCategory, name string) (string, bool) {
			if name == "active" {
				return boolString(c.Active), true
			}
			return "", false
		},
		Seed: seedCategories,
	}, opts)}
}

// GetActive categorías activas.
func (r *ProductCategoryRepository) GetActive(ctx context.Context) ([]entity.ProductCategory, error) {
	return r.list(ctx, func(c entity.ProductCategory) bool { return c.Active })
}

// ProductMovementRepository kardex.
type ProductMovementRepository struct {
	*Repository[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch]
}

var _ repository.ProductMovementRepository = (*ProductMovementRepository)(nil)

// NewProductMovementRepository crea el repositorio del kardex.
func NewProductMovementRepository(opts Options) *ProductMovementRepository {
	return &ProductMovementRepository{NewRepository[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch](Schema[entity.ProductMovement]{
		Entity: "movimiento",
		Plural: "product_movements",
		Searchable: func(m entity.ProductMovement) []string {
			fields := []string{m.Reason, m.Reference, m.Type}
			if m.Product != nil {
				fields = append(fields, m.Product.Name, m.Product.Code)
			}
			return fields
		},
		Field: func(m entity.ProductMovement, name string) (string, bool) {
			switch name {
			case "type":
				return m.Type, true
			case "productId":
				return m.ProductID, true
			}
			return "", false
		},
		Date: func(m entity.ProductMovement) time.Time { return m.Date },
	}, opts)}
}

// GetByProductID kardex de un producto.
func (r *ProductMovementRepository) GetByProductID(ctx context.Context, productID string) ([]entity.ProductMovement, error) {
	return r.list(ctx, func(m entity.ProductMovement) bool { return m.ProductID == productID })
}

// GetByType movimientos de un tipo.
func (r *ProductMovementRepository) GetByType(ctx context.Context, movementType string) ([]entity.ProductMovement, error) {
	return r.list(ctx, func(m entity.ProductMovement) bool { return m.Type == movementType })
}

// GetByDateRange movimientos con fecha en [Start, End].
func (r *ProductMovementRepository) GetByDateRange(ctx context.Context, dr domain.DateRange) ([]entity.ProductMovement, error) {
	return r.listInRange(ctx, dr)
}
