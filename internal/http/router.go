package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/config"
	"github.com/iyhunko/catalog-service/internal/http/controller"
	"github.com/iyhunko/catalog-service/internal/http/middleware"
)

// InitRouter binds the catalog routes onto the given engine.
func InitRouter(_ *config.Config, server *gin.Engine, ctr *controller.Controller, productCtr *controller.ProductController, categoryCtr *controller.CategoryController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())

	server.GET("/ping", ctr.Ping)

	// Product endpoints
	products := server.Group("/products")
	{
		products.POST("", productCtr.CreateProduct)
		products.GET("", productCtr.ListProducts)
		products.GET("/:id", productCtr.GetProduct)
		products.PUT("/:id", productCtr.UpdateProduct)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	// Category endpoints
	categories := server.Group("/categories")
	{
		categories.POST("", categoryCtr.CreateCategory)
		categories.GET("", categoryCtr.ListCategories)
		categories.GET("/:id", categoryCtr.GetCategory)
		categories.PUT("/:id", categoryCtr.UpdateCategory)
		categories.DELETE("/:id", categoryCtr.DeleteCategory)
	}

	return server
}
