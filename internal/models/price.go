package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price trends
const (
	TrendUp     = "UP"
	TrendDown   = "DOWN"
	TrendStable = "STABLE"
)

// MaxPriceHistory bounds the price history series; the oldest point is
// evicted once the series grows past it.
const MaxPriceHistory = 30

// GoldPrice is the single-row current quote. Trend compares the new buy
// price against the previous one.
type GoldPrice struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	Buy         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"buy"`
	Sell        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"sell"`
	Trend       string          `gorm:"size:10;not null;default:STABLE" json:"trend"` // UP, DOWN, STABLE
	LastUpdated time.Time       `json:"last_updated"`
}

// TableName specifies the table name for GoldPrice model
func (GoldPrice) TableName() string {
	return "gold_prices"
}

// PricePoint is one entry in the bounded price history series
type PricePoint struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	Date      string          `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
}

// TableName specifies the table name for PricePoint model
func (PricePoint) TableName() string {
	return "price_points"
}
