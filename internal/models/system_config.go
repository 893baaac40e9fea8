package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemConfig is the single-row global configuration. The commission rate
// applies to every future BUY approval; changes are not retroactive.
type SystemConfig struct {
	ID                     uint            `gorm:"primaryKey" json:"-"`
	ReferralCommissionRate decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0.05" json:"referral_commission_rate"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// TableName specifies the table name for SystemConfig model
func (SystemConfig) TableName() string {
	return "system_configs"
}

// PaymentMethod holds admin-editable payment instructions shown to buyers
type PaymentMethod struct {
	ID        string    `gorm:"primaryKey;size:20" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Details   string    `gorm:"type:text" json:"details"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
