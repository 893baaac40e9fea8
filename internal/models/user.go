package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Referral program statuses
const (
	ReferralInactive = "INACTIVE"
	ReferralPending  = "PENDING"
	ReferralActive   = "ACTIVE"
)

// User represents an account holding fiat and gold balances
type User struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Email          string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash   string          `gorm:"size:255;not null" json:"-"`
	Role           string          `gorm:"size:10;not null;default:USER" json:"role"` // USER, ADMIN
	BalanceFiat    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance_fiat"`
	BalanceGold    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"balance_gold"`
	LockedGold     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"locked_gold"`
	ReferralStatus string          `gorm:"size:10;not null;default:INACTIVE" json:"referral_status"` // INACTIVE, PENDING, ACTIVE
	ReferredByID   *uint           `gorm:"index" json:"referred_by_id,omitempty"`
	ReferredBy     *User           `gorm:"foreignKey:ReferredByID" json:"referred_by,omitempty"`
	AvatarURL      string          `gorm:"size:500" json:"avatar_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// AvailableGold is the portion of the gold balance not locked by mining
func (u *User) AvailableGold() decimal.Decimal {
	return u.BalanceGold.Sub(u.LockedGold)
}
