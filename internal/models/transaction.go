package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types
const (
	TxBuy        = "BUY"
	TxSell       = "SELL"
	TxActivation = "ACTIVATION"
)

// Transaction statuses
const (
	TxPending   = "PENDING"
	TxCompleted = "COMPLETED"
	TxRejected  = "REJECTED"
)

// Transaction is one entry in the append-mostly ledger. Price and gold amount
// are snapshotted at creation and never recomputed; approval settles against
// the snapshot, not the live quote.
type Transaction struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UserName      string          `gorm:"size:100" json:"user_name"`
	Type          string          `gorm:"size:12;not null;index" json:"type"`                   // BUY, SELL, ACTIVATION
	Status        string          `gorm:"size:12;not null;default:PENDING;index" json:"status"` // PENDING, COMPLETED, REJECTED
	AmountGold    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"amount_gold"`
	AmountFiat    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_fiat"`
	PricePerGram  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"price_per_gram"`
	PaymentMethod string          `gorm:"size:100" json:"payment_method,omitempty"`
	ScreenshotURL string          `gorm:"size:500" json:"screenshot_url,omitempty"`
	PayoutDetails string          `gorm:"type:text" json:"payout_details,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
