package schema

// CategoryCreate is the request body for creating a category.
type CategoryCreate struct {
	Name string `json:"name" binding:"required"`
}

// CategoryUpdate is the request body for renaming a category.
type CategoryUpdate struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse is the response body for a category. Products defaults to
// an empty list and is never omitted.
type CategoryResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Products  []ProductResponse `json:"products"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

// NewCategoryResponse converts a stored category into its response schema.
// It fails with ErrSchemasNotLinked until Link has run.
func NewCategoryResponse(e CategoryEntity) (CategoryResponse, error) {
	r, err := currentResolver()
	if err != nil {
		return CategoryResponse{}, err
	}
	return r.category(r, e, 0), nil
}

// NewCategoryResponseList converts a page of categories. It always returns a
// non-nil slice so an empty table serializes as [] rather than null.
func NewCategoryResponseList(entities []CategoryEntity) ([]CategoryResponse, error) {
	r, err := currentResolver()
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(entities))
	for _, e := range entities {
		responses = append(responses, r.category(r, e, 0))
	}
	return responses, nil
}

// buildCategoryResponse reads the entity field by field. Member products are
// produced through the resolver slot, which Link points at the product
// conversion once both schemas exist.
func buildCategoryResponse(r *resolver, e CategoryEntity, depth int) CategoryResponse {
	resp := CategoryResponse{
		ID:        e.GetID(),
		Name:      e.GetName(),
		Products:  []ProductResponse{},
		CreatedAt: formatTime(e.GetCreatedAt()),
		UpdatedAt: formatTime(e.GetUpdatedAt()),
	}
	if depth < maxNestingDepth {
		for _, product := range e.GetProducts() {
			resp.Products = append(resp.Products, r.product(r, product, depth+1))
		}
	}
	return resp
}
