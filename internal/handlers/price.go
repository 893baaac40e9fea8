package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auro-gold/internal/services"
)

// PriceHandler serves quote, history, payment methods and market insights
type PriceHandler struct {
	prices   *services.PriceService
	ledger   *services.Ledger
	insights *services.InsightsService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(prices *services.PriceService, ledger *services.Ledger, insights *services.InsightsService) *PriceHandler {
	return &PriceHandler{prices: prices, ledger: ledger, insights: insights}
}

// GetPrice returns the current quote.
// GET /api/price
func (h *PriceHandler) GetPrice(c *gin.Context) {
	quote, err := h.prices.Quote()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// GetPriceHistory returns the bounded history series, oldest first.
// GET /api/price/history
func (h *PriceHandler) GetPriceHistory(c *gin.Context) {
	points, err := h.prices.History()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    points,
	})
}

// GetInsights returns market commentary. Always succeeds: generation
// failures degrade to static fallback text.
// GET /api/insights
func (h *PriceHandler) GetInsights(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.insights.MarketInsights(c.Request.Context()),
	})
}

// GetPaymentMethods returns the payment instructions shown to buyers.
// GET /api/payment-methods
func (h *PriceHandler) GetPaymentMethods(c *gin.Context) {
	methods, err := h.ledger.PaymentMethods()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    methods,
	})
}
