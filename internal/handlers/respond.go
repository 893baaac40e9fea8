package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"auro-gold/internal/services"
)

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var belowMin *services.BelowMinimumSellError
	var insufficient *services.InsufficientGoldError

	switch {
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrPackageNotFound),
		errors.Is(err, services.ErrPaymentMethodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidReferralCode),
		errors.Is(err, services.ErrAlreadyActive),
		errors.Is(err, services.ErrActivationPending),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidRate),
		errors.As(err, &belowMin),
		errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
