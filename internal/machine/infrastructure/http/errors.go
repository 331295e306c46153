package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
)

// handleDomainError translates the engine's error taxonomy into HTTP
// statuses. Anything unrecognized is a system fault and stays opaque.
func handleDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, &domain.InvalidCoinError{}),
		errors.Is(err, &domain.InvalidArgumentsError{}),
		errors.Is(err, &domain.InvalidOperationError{}),
		errors.Is(err, &domain.InsufficientFundsError{}),
		errors.Is(err, &domain.InsufficientStockError{}):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.UserNotFoundError{}),
		errors.Is(err, &domain.ProductNotFoundError{}):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case errors.Is(err, &domain.CredentialsMismatchError{}):
		c.JSON(http.StatusUnauthorized, gin.H{"errors": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
