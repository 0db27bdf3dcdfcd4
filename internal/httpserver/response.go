package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	authsvc "github.com/Diego999991/ecommerce-api/internal/service/auth"
)

// writeError maps domain errors to HTTP responses. Anything unrecognized is
// logged and reported as an opaque 500.
func writeError(c *gin.Context, logger *log.Logger, err error) {
	var verr *domain.ValidationError
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"productId": stockErr.ProductID,
			"available": stockErr.Available,
		})
	case errors.Is(err, domain.ErrConflictRetryable):
		c.JSON(http.StatusConflict, gin.H{"error": "conflicting concurrent update", "retryable": true})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		logger.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
