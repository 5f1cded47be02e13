package model

import (
	"time"

	"github.com/iyhunko/catalog-service/internal/schema"
)

// Category represents a product category row. Products holds the products
// whose category_id points at this category; it is derived, never stored,
// and populated by the repository when the relation is loaded.
type Category struct {
	ID        int64
	Name      string
	Products  []*Product
	UpdatedAt time.Time
	CreatedAt time.Time
}

// InitMeta initializes the category timestamps. The ID is assigned by the
// database on insert.
func (c *Category) InitMeta() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

// GetID implements schema.CategoryEntity.
func (c *Category) GetID() int64 { return c.ID }

// GetName implements schema.CategoryEntity.
func (c *Category) GetName() string { return c.Name }

// GetProducts implements schema.CategoryEntity.
func (c *Category) GetProducts() []schema.ProductEntity {
	if len(c.Products) == 0 {
		return nil
	}
	products := make([]schema.ProductEntity, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, p)
	}
	return products
}

// GetCreatedAt implements schema.CategoryEntity.
func (c *Category) GetCreatedAt() time.Time { return c.CreatedAt }

// GetUpdatedAt implements schema.CategoryEntity.
func (c *Category) GetUpdatedAt() time.Time { return c.UpdatedAt }
