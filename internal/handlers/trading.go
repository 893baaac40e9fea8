package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auro-gold/internal/auth"
	"auro-gold/internal/services"
)

// TradingHandler serves buy/sell submissions and activation requests
type TradingHandler struct {
	ledger *services.Ledger
}

// NewTradingHandler creates a new TradingHandler
func NewTradingHandler(ledger *services.Ledger) *TradingHandler {
	return &TradingHandler{ledger: ledger}
}

// BuyGold submits a PENDING BUY request. Gold is credited on admin
// approval, not here.
// POST /api/trade/buy
func (h *TradingHandler) BuyGold(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Grams           decimal.Decimal `json:"grams" binding:"required"`
		PaymentMethodID string          `json:"payment_method_id"`
		ScreenshotURL   string          `json:"screenshot_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.ledger.SubmitBuy(userID, req.Grams, req.PaymentMethodID, req.ScreenshotURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    tx,
	})
}

// SellGold submits a PENDING SELL request; the gold is debited
// immediately.
// POST /api/trade/sell
func (h *TradingHandler) SellGold(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Grams         decimal.Decimal `json:"grams" binding:"required"`
		PayoutDetails string          `json:"payout_details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.ledger.SubmitSell(userID, req.Grams, req.PayoutDetails)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    tx,
	})
}

// RequestActivation submits a referral program activation request.
// POST /api/referral/activate
func (h *TradingHandler) RequestActivation(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		ScreenshotURL string `json:"screenshot_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.ledger.RequestActivation(userID, req.ScreenshotURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    tx,
	})
}
