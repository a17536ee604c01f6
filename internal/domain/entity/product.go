package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory categoría de productos.
type ProductCategory struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// ProductCategoryInput payload de creación. Active nil se interpreta como activa.
type ProductCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// Validate el nombre es obligatorio.
func (in ProductCategoryInput) Validate() error {
	return required("categoría", "name", in.Name)
}

// Build materializa la categoría.
func (in ProductCategoryInput) Build(id string, now time.Time) ProductCategory {
	active := true
	set(&active, in.Active)
	return ProductCategory{Base: newBase(id, now), Name: in.Name, Description: in.Description, Active: active}
}

// ProductCategoryPatch actualización parcial.
type ProductCategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// Apply aplica los campos presentes.
func (p ProductCategoryPatch) Apply(item *ProductCategory, now time.Time) {
	set(&item.Name, p.Name)
	set(&item.Description, p.Description)
	set(&item.Active, p.Active)
	item.UpdatedAt = now
}

// Product producto del punto de venta. Stock se modifica con movimientos (kardex).
type Product struct {
	Base
	Name        string           `json:"name"`
	Code        string           `json:"code"` // código único (SKU)
	Description string           `json:"description,omitempty"`
	CategoryID  string           `json:"categoryId,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Cost        decimal.Decimal  `json:"cost"`
	Stock       int              `json:"stock"`
	MinStock    int              `json:"minStock"`
	Active      bool             `json:"active"`
}

// LowStock indica si el stock está en o por debajo del mínimo.
func (p Product) LowStock() bool { return p.Stock <= p.MinStock }

// ProductInput payload de creación.
type ProductInput struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Active      *bool           `json:"active,omitempty"`
}

// Validate nombre y código obligatorios; precios y stock no negativos.
func (in ProductInput) Validate() error {
	if err := required("producto", "name", in.Name); err != nil {
		return err
	}
	if err := required("producto", "code", in.Code); err != nil {
		return err
	}
	if err := nonNegative("producto", "price", in.Price); err != nil {
		return err
	}
	if err := nonNegative("producto", "cost", in.Cost); err != nil {
		return err
	}
	if in.Stock < 0 {
		return nonNegative("producto", "stock", decimal.NewFromInt(int64(in.Stock)))
	}
	return nil
}

// Build materializa el producto.
func (in ProductInput) Build(id string, now time.Time) Product {
	active := true
	set(&active, in.Active)
	return Product{
		Base:        newBase(id, now),
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Active:      active,
	}
}

// ProductPatch actualización parcial. Stock solo debería cambiar vía movimientos;
// se admite para ajustes administrativos.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Code        *string          `json:"code,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	MinStock    *int             `json:"minStock,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// Apply aplica los campos presentes.
func (p ProductPatch) Apply(item *Product, now time.Time) {
	set(&item.Name, p.Name)
	set(&item.Code, p.Code)
	set(&item.Description, p.Description)
	if p.CategoryID != nil && *p.CategoryID != item.CategoryID {
		item.CategoryID, item.Category = *p.CategoryID, nil
	}
	set(&item.Price, p.Price)
	set(&item.Cost, p.Cost)
	set(&item.Stock, p.Stock)
	set(&item.MinStock, p.MinStock)
	set(&item.Active, p.Active)
	item.UpdatedAt = now
}
