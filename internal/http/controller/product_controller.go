package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/repository"
	"github.com/iyhunko/catalog-service/internal/schema"
	"github.com/iyhunko/catalog-service/internal/service"
)

// NextPageTokenHeader carries the cursor for the next page on list
// responses, whose bodies are plain JSON arrays.
const NextPageTokenHeader = "X-Next-Page-Token"

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req schema.ProductCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := pc.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err, "category not found")
		return
	}

	resp, err := schema.NewProductResponse(created)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetProduct handles the HTTP GET request for fetching a product by ID.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "invalid product ID")
	if !ok {
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err, "product not found")
		return
	}

	resp, err := schema.NewProductResponse(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProduct handles the HTTP PUT request for replacing a product by ID.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "invalid product ID")
	if !ok {
		return
	}

	var req schema.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := pc.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		abortWithError(c, err, "product not found")
		return
	}

	resp, err := schema.NewProductResponse(updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "invalid product ID")
	if !ok {
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		abortWithError(c, err, "product not found")
		return
	}

	c.JSON(http.StatusOK, schema.MessageResponse{Message: "Product deleted successfully"})
}

// ListProductsRequest represents the query parameters for listing products.
type ListProductsRequest struct {
	Limit int32  `form:"limit"`
	Token string `form:"token"`
}

// ListProducts handles the HTTP GET request for listing products. An empty
// table yields 200 with an empty array, not 404.
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery()
	if err := query.ApplyPagination(req.Limit, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := pc.productService.ListProducts(c.Request.Context(), *query)
	if err != nil {
		abortWithError(c, err, "product not found")
		return
	}

	entities := make([]schema.ProductEntity, 0, len(products))
	for _, product := range products {
		entities = append(entities, product)
	}

	resp, err := schema.NewProductResponseList(entities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(products) > 0 {
		last := products[len(products)-1]
		paginator := repository.Paginator{
			LastID:        last.ID,
			LastCreatedAt: last.CreatedAt,
		}
		c.Header(NextPageTokenHeader, paginator.Encode())
	}

	c.JSON(http.StatusOK, resp)
}

func parseIDParam(c *gin.Context, errMsg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return 0, false
	}
	return id, true
}
