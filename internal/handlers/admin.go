package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auro-gold/internal/models"
	"auro-gold/internal/services"
)

// AdminHandler serves admin-only operations: price updates, transaction
// settlement, user listing and configuration edits
type AdminHandler struct {
	ledger *services.Ledger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(ledger *services.Ledger) *AdminHandler {
	return &AdminHandler{ledger: ledger}
}

// SetPrice updates the current quote.
// POST /api/admin/price
func (h *AdminHandler) SetPrice(c *gin.Context) {
	var req struct {
		Buy  decimal.Decimal `json:"buy" binding:"required"`
		Sell decimal.Decimal `json:"sell" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.ledger.SetQuote(req.Buy, req.Sell)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// GetPendingTransactions lists all PENDING transactions, oldest first.
// GET /api/admin/transactions/pending
func (h *AdminHandler) GetPendingTransactions(c *gin.Context) {
	txs, err := h.ledger.PendingTransactions()
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

// GetAllTransactions lists every transaction, newest first.
// GET /api/admin/transactions
func (h *AdminHandler) GetAllTransactions(c *gin.Context) {
	txs, err := h.ledger.ListTransactions(nil)
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

// ApproveTransaction settles a PENDING transaction.
// POST /api/admin/transactions/:id/approve
func (h *AdminHandler) ApproveTransaction(c *gin.Context) {
	tx, err := h.ledger.Approve(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tx,
	})
}

// RejectTransaction rejects a PENDING transaction.
// POST /api/admin/transactions/:id/reject
func (h *AdminHandler) RejectTransaction(c *gin.Context) {
	tx, err := h.ledger.Reject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tx,
	})
}

// GetUsers lists all accounts.
// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.ledger.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
		"count":   len(users),
	})
}

// UpdatePaymentMethod replaces the instructions text of a payment method.
// PUT /api/admin/payment-methods/:id
func (h *AdminHandler) UpdatePaymentMethod(c *gin.Context) {
	var req struct {
		Details string `json:"details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledger.UpdatePaymentMethod(c.Param("id"), req.Details); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpsertMiningPackage creates or edits a package template.
// PUT /api/admin/mining/packages
func (h *AdminHandler) UpsertMiningPackage(c *gin.Context) {
	var req struct {
		ID          uint            `json:"id"`
		Name        string          `json:"name" binding:"required"`
		Cost        decimal.Decimal `json:"cost" binding:"required"`
		DailyProfit decimal.Decimal `json:"daily_profit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg := models.MiningPackage{
		ID:          req.ID,
		Name:        req.Name,
		Cost:        req.Cost,
		DailyProfit: req.DailyProfit,
	}
	if err := h.ledger.UpsertPackage(&pkg); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pkg,
	})
}

// SetReferralRate updates the global commission rate.
// PUT /api/admin/config/referral-rate
func (h *AdminHandler) SetReferralRate(c *gin.Context) {
	var req struct {
		Rate decimal.Decimal `json:"rate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledger.SetReferralCommissionRate(req.Rate); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
