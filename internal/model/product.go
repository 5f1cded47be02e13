package model

import (
	"time"

	"github.com/iyhunko/catalog-service/internal/schema"
)

// Product represents a catalog product row. Category is populated by the
// repository when the relation is loaded and stays nil otherwise.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int64
	CategoryID  *int64
	Category    *Category
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// InitMeta initializes the product timestamps. The ID is assigned by the
// database on insert.
func (p *Product) InitMeta() {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// GetID implements schema.ProductEntity.
func (p *Product) GetID() int64 { return p.ID }

// GetName implements schema.ProductEntity.
func (p *Product) GetName() string { return p.Name }

// GetDescription implements schema.ProductEntity.
func (p *Product) GetDescription() string { return p.Description }

// GetPrice implements schema.ProductEntity.
func (p *Product) GetPrice() float64 { return p.Price }

// GetQuantity implements schema.ProductEntity.
func (p *Product) GetQuantity() int64 { return p.Quantity }

// GetCategoryID implements schema.ProductEntity.
func (p *Product) GetCategoryID() *int64 { return p.CategoryID }

// GetCategory implements schema.ProductEntity. It returns a nil interface
// (not a typed nil) when the relation is not loaded.
func (p *Product) GetCategory() schema.CategoryEntity {
	if p.Category == nil {
		return nil
	}
	return p.Category
}

// GetCreatedAt implements schema.ProductEntity.
func (p *Product) GetCreatedAt() time.Time { return p.CreatedAt }

// GetUpdatedAt implements schema.ProductEntity.
func (p *Product) GetUpdatedAt() time.Time { return p.UpdatedAt }
