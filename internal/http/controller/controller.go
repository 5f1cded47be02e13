package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/catalog-service/internal/config"
	"github.com/iyhunko/catalog-service/internal/repository"
)

// Controller handles general HTTP requests.
type Controller struct {
	config *config.Config
}

// New creates a new Controller with the given configuration.
func New(config *config.Config) *Controller {
	return &Controller{
		config: config,
	}
}

// Ping handles the HTTP GET request for health check endpoint.
func (con *Controller) Ping(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

// abortWithError translates repository failures into HTTP status codes:
// missing rows map to 404, broken category references to 400, duplicate
// names to 409, anything else to 500.
func abortWithError(c *gin.Context, err error, notFoundMsg string) {
	var uniqueErr *repository.UniqueConstraintError
	var fkErr *repository.ForeignKeyViolationError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.As(err, &fkErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
	case errors.As(err, &uniqueErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
