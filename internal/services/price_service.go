package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auro-gold/internal/models"
)

// PriceService holds the current buy/sell quote and a bounded history
// series. Quote mutations go through the Ledger facade; reads hit the
// database directly.
type PriceService struct {
	db *gorm.DB
}

// NewPriceService creates a new PriceService
func NewPriceService(db *gorm.DB) *PriceService {
	return &PriceService{db: db}
}

// Quote returns the current gold price
func (s *PriceService) Quote() (*models.GoldPrice, error) {
	var price models.GoldPrice
	if err := s.db.First(&price).Error; err != nil {
		return nil, fmt.Errorf("failed to load gold price: %w", err)
	}
	return &price, nil
}

// History returns the price history series, oldest first
func (s *PriceService) History() ([]models.PricePoint, error) {
	var points []models.PricePoint
	if err := s.db.Order("id ASC").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

// setQuote updates the quote inside an open transaction. The trend compares
// the new buy price to the previous one; each update appends a history
// point and evicts the oldest beyond MaxPriceHistory.
func (s *PriceService) setQuote(tx *gorm.DB, buy, sell decimal.Decimal) (*models.GoldPrice, error) {
	if !buy.IsPositive() || !sell.IsPositive() {
		return nil, ErrInvalidPrice
	}

	var price models.GoldPrice
	if err := tx.First(&price).Error; err != nil {
		return nil, fmt.Errorf("failed to load gold price: %w", err)
	}

	trend := models.TrendStable
	switch {
	case buy.GreaterThan(price.Buy):
		trend = models.TrendUp
	case buy.LessThan(price.Buy):
		trend = models.TrendDown
	}

	price.Buy = buy
	price.Sell = sell
	price.Trend = trend
	price.LastUpdated = time.Now()
	if err := tx.Save(&price).Error; err != nil {
		return nil, fmt.Errorf("failed to update gold price: %w", err)
	}

	point := models.PricePoint{
		Date:  time.Now().Format("2006-01-02"),
		Price: buy,
	}
	if err := tx.Create(&point).Error; err != nil {
		return nil, fmt.Errorf("failed to append price point: %w", err)
	}

	// FIFO eviction past the history bound
	var count int64
	if err := tx.Model(&models.PricePoint{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > models.MaxPriceHistory {
		excess := count - models.MaxPriceHistory
		var oldest []models.PricePoint
		if err := tx.Order("id ASC").Limit(int(excess)).Find(&oldest).Error; err != nil {
			return nil, err
		}
		if err := tx.Delete(&oldest).Error; err != nil {
			return nil, fmt.Errorf("failed to evict price history: %w", err)
		}
	}

	return &price, nil
}
