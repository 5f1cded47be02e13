// Package schema defines the wire-visible request and response shapes for
// catalog entities. Response schemas are projections of stored entities and
// live for a single request/response cycle.
//
// ProductResponse embeds CategoryResponse and CategoryResponse embeds a list
// of ProductResponse, so the two conversions reference each other. Neither
// conversion calls the other directly: each goes through a resolver slot that
// stays empty until Link fills both, after which the pair can serialize.
package schema

import (
	"errors"
	"sync"
	"time"
)

// ErrSchemasNotLinked is returned when a response conversion runs before
// Link has resolved the Product/Category cross references.
var ErrSchemasNotLinked = errors.New("response schemas are not linked: call schema.Link before serializing")

// maxNestingDepth caps relationship expansion at one level: a product's
// nested category carries an empty products list, and a category's nested
// products carry a null category.
const maxNestingDepth = 1

// ProductEntity is the read-side contract a stored product satisfies so the
// schema layer can populate a response from it attribute by attribute.
type ProductEntity interface {
	GetID() int64
	GetName() string
	GetDescription() string
	GetPrice() float64
	GetQuantity() int64
	GetCategoryID() *int64
	GetCategory() CategoryEntity
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// CategoryEntity is the read-side contract a stored category satisfies.
type CategoryEntity interface {
	GetID() int64
	GetName() string
	GetProducts() []ProductEntity
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// resolver holds the two conversion functions once both exist. Each function
// reaches the other response schema only through its slot here.
type resolver struct {
	product  func(r *resolver, e ProductEntity, depth int) ProductResponse
	category func(r *resolver, e CategoryEntity, depth int) CategoryResponse
}

var (
	linkMu sync.Mutex
	linked *resolver
)

// Link resolves the mutual reference between ProductResponse and
// CategoryResponse. It must run once at process start, before the first
// response is serialized. Calling it again is a no-op.
func Link() {
	linkMu.Lock()
	defer linkMu.Unlock()
	if linked != nil {
		return
	}
	linked = &resolver{
		product:  buildProductResponse,
		category: buildCategoryResponse,
	}
}

func currentResolver() (*resolver, error) {
	linkMu.Lock()
	defer linkMu.Unlock()
	if linked == nil {
		return nil, ErrSchemasNotLinked
	}
	return linked, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
