package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Mining subscription statuses
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionCompleted = "COMPLETED"
)

// SubscriptionTermDays is the fixed lifetime of a mining subscription.
const SubscriptionTermDays = 30

// MiningPackage is a mutable template. Subscriptions snapshot its fields at
// activation, so later edits never affect running subscriptions.
type MiningPackage struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"cost"`
	DailyProfit decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"daily_profit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for MiningPackage model
func (MiningPackage) TableName() string {
	return "mining_packages"
}

// MiningSubscription locks gold for a fixed term and accrues daily fiat
// profit. LastPayout is the accrual cursor: it advances by whole elapsed
// days, never resets to now, so fractional days are never double-counted.
type MiningSubscription struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	UserID           uint            `gorm:"not null;index" json:"user_id"`
	User             User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PackageID        uint            `gorm:"not null" json:"package_id"`
	PackageName      string          `gorm:"size:100;not null" json:"package_name"`
	PackageCost      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"package_cost"`
	DailyProfit      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"daily_profit"`
	LockedGoldAmount decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"locked_gold_amount"`
	StartDate        time.Time       `gorm:"not null" json:"start_date"`
	EndDate          time.Time       `gorm:"not null" json:"end_date"`
	LastPayout       time.Time       `gorm:"not null" json:"last_payout"`
	Status           string          `gorm:"size:12;not null;default:ACTIVE;index" json:"status"` // ACTIVE, COMPLETED
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for MiningSubscription model
func (MiningSubscription) TableName() string {
	return "mining_subscriptions"
}

func (s *MiningSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
