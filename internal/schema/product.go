package schema

// ProductCreate is the request body for creating a product. Price and
// Quantity are pointers so "required" can tell an absent field apart from an
// explicit zero, which is valid.
type ProductCreate struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Quantity    *int64   `json:"quantity" binding:"required,gte=0"`
	CategoryID  *int64   `json:"category_id"`
}

// ProductUpdate is the request body for replacing a product. Every field is
// written on update; there are no partial-patch semantics.
type ProductUpdate struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Quantity    *int64   `json:"quantity" binding:"required,gte=0"`
	CategoryID  *int64   `json:"category_id"`
}

// ProductResponse is the response body for a product. Category is null when
// the product has no category or the relation was not loaded.
type ProductResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Quantity    int64             `json:"quantity"`
	CategoryID  *int64            `json:"category_id"`
	Category    *CategoryResponse `json:"category"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// NewProductResponse converts a stored product into its response schema.
// It fails with ErrSchemasNotLinked until Link has run.
func NewProductResponse(e ProductEntity) (ProductResponse, error) {
	r, err := currentResolver()
	if err != nil {
		return ProductResponse{}, err
	}
	return r.product(r, e, 0), nil
}

// NewProductResponseList converts a page of products. It always returns a
// non-nil slice so an empty table serializes as [] rather than null.
func NewProductResponseList(entities []ProductEntity) ([]ProductResponse, error) {
	r, err := currentResolver()
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(entities))
	for _, e := range entities {
		responses = append(responses, r.product(r, e, 0))
	}
	return responses, nil
}

// buildProductResponse reads the entity field by field. The nested category
// is produced through the resolver slot, which Link points at the category
// conversion once both schemas exist.
func buildProductResponse(r *resolver, e ProductEntity, depth int) ProductResponse {
	resp := ProductResponse{
		ID:          e.GetID(),
		Name:        e.GetName(),
		Description: e.GetDescription(),
		Price:       e.GetPrice(),
		Quantity:    e.GetQuantity(),
		CategoryID:  e.GetCategoryID(),
		CreatedAt:   formatTime(e.GetCreatedAt()),
		UpdatedAt:   formatTime(e.GetUpdatedAt()),
	}
	if depth < maxNestingDepth {
		if category := e.GetCategory(); category != nil {
			nested := r.category(r, category, depth+1)
			resp.Category = &nested
		}
	}
	return resp
}
