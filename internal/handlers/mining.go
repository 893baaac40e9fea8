package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auro-gold/internal/auth"
	"auro-gold/internal/services"
)

// MiningHandler serves mining packages and subscriptions
type MiningHandler struct {
	ledger *services.Ledger
}

// NewMiningHandler creates a new MiningHandler
func NewMiningHandler(ledger *services.Ledger) *MiningHandler {
	return &MiningHandler{ledger: ledger}
}

// GetPackages lists the available mining package templates.
// GET /api/mining/packages
func (h *MiningHandler) GetPackages(c *gin.Context) {
	pkgs, err := h.ledger.Packages()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pkgs,
	})
}

// ActivateMining locks gold and starts a subscription.
// POST /api/mining/activate
func (h *MiningHandler) ActivateMining(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		PackageID uint `json:"package_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.ledger.ActivateMining(userID, req.PackageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    sub,
	})
}

// GetSubscriptions lists the caller's subscriptions, newest first.
// GET /api/mining/subscriptions
func (h *MiningHandler) GetSubscriptions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	subs, err := h.ledger.Subscriptions(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    subs,
		"count":   len(subs),
	})
}
