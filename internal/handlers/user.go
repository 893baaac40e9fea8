package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auro-gold/internal/auth"
	"auro-gold/internal/services"
)

// UserHandler serves account state and per-user listings
type UserHandler struct {
	ledger *services.Ledger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(ledger *services.Ledger) *UserHandler {
	return &UserHandler{ledger: ledger}
}

// GetProfile returns the caller's account after a reconciliation pass.
// GET /api/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.ledger.GetAccount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetTransactions returns the caller's transactions, newest first.
// GET /api/transactions
func (h *UserHandler) GetTransactions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txs, err := h.ledger.ListTransactions(&userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    txs,
		"count":   len(txs),
	})
}

// GetReferralCodes returns the caller's referral codes.
// GET /api/referral/codes
func (h *UserHandler) GetReferralCodes(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	codes, err := h.ledger.ReferralCodes(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    codes,
	})
}

// GetSystemConfig returns the global configuration.
// GET /api/config
func (h *UserHandler) GetSystemConfig(c *gin.Context) {
	cfg, err := h.ledger.SystemConfig()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cfg,
	})
}
