package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisonService *usecase.ComparisonService
}

// NewHandler creates a new HTTP handler
func NewHandler(comparisonService *usecase.ComparisonService) *Handler {
	return &Handler{
		comparisonService: comparisonService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopscout-backend",
		"version": "1.0.0",
	})
}

// Compare handles a comparison request from the content script. The request
// body is a ProductRecord; a record without a title or URL never reaches
// the engine.
func (h *Handler) Compare(c *gin.Context) {
	var product domain.ProductRecord
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid product record: " + err.Error(),
		})
		return
	}

	result, err := h.comparisonService.Compare(c.Request.Context(), &product)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// Total failure: even fallback synthesis gave nothing
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "comparison unavailable",
				"retryable": true,
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
