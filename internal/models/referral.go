package models

import (
	"time"
)

// ReferralCode is a single-use code owned by one account. Codes are issued
// in batches of four when an activation request is approved.
type ReferralCode struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Code         string     `gorm:"uniqueIndex;size:20;not null" json:"code"`
	IsUsed       bool       `gorm:"not null;default:false" json:"is_used"`
	UsedByUserID *uint      `json:"used_by_user_id,omitempty"`
	UsedByUser   *User      `gorm:"foreignKey:UsedByUserID" json:"used_by_user,omitempty"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for ReferralCode model
func (ReferralCode) TableName() string {
	return "referral_codes"
}
