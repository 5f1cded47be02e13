package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/schema"
	"github.com/iyhunko/catalog-service/internal/service"
)

// CategoryController handles HTTP requests for category operations.
type CategoryController struct {
	categoryService *service.CategoryService
}

// NewCategoryController creates a new CategoryController with the given category service.
func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// CreateCategory handles the HTTP POST request for creating a new category.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req schema.CategoryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := cc.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err, "category not found")
		return
	}

	resp, err := schema.NewCategoryResponse(created)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetCategory handles the HTTP GET request for fetching a category by ID.
func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "invalid category ID")
	if !ok {
		return
	}

	category, err := cc.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err, "category not found")
		return
	}

	resp, err := schema.NewCategoryResponse(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateCategory handles the HTTP PUT request for renaming a category by ID.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "invalid category ID")
	if !ok {
		return
	}

	var req schema.CategoryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := cc.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		abortWithError(c, err, "category not found")
		return
	}

	resp, err := schema.NewCategoryResponse(updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteCategory handles the HTTP DELETE request for deleting a category by
// ID. Products in the category are detached rather than deleted.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "invalid category ID")
	if !ok {
		return
	}

	if err := cc.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		abortWithError(c, err, "category not found")
		return
	}

	c.JSON(http.StatusOK, schema.MessageResponse{Message: "Category deleted successfully"})
}

// ListCategoriesRequest represents the query parameters for listing categories.
type ListCategoriesRequest struct {
	Limit int32  `form:"limit"`
	Token string `form:"token"`
}

// ListCategories handles the HTTP GET request for listing categories. An
// empty table yields 200 with an empty array, not 404.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	var req ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery()
	if err := query.ApplyPagination(req.Limit, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, err := cc.categoryService.ListCategories(c.Request.Context(), *query)
	if err != nil {
		abortWithError(c, err, "category not found")
		return
	}

	entities := make([]schema.CategoryEntity, 0, len(categories))
	for _, category := range categories {
		entities = append(entities, category)
	}

	resp, err := schema.NewCategoryResponseList(entities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(categories) > 0 {
		last := categories[len(categories)-1]
		paginator := repository.Paginator{
			LastID:        last.ID,
			LastCreatedAt: last.CreatedAt,
		}
		c.Header(NextPageTokenHeader, paginator.Encode())
	}

	c.JSON(http.StatusOK, resp)
}
