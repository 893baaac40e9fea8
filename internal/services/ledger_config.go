package services

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auro-gold/internal/models"
)

// SetQuote updates the current quote through the facade so price mutations
// serialize with balance mutations (trend depends on the previous quote).
func (l *Ledger) SetQuote(buy, sell decimal.Decimal) (*models.GoldPrice, error) {
	var updated *models.GoldPrice
	err := l.withTx(func(tx *gorm.DB) error {
		var err error
		updated, err = l.prices.setQuote(tx, buy, sell)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Gold price updated: buy=%s sell=%s trend=%s", updated.Buy, updated.Sell, updated.Trend)
	return updated, nil
}

// SystemConfig returns the global configuration, creating the default row
// when missing
func (l *Ledger) SystemConfig() (*models.SystemConfig, error) {
	var cfg *models.SystemConfig
	err := l.withTx(func(tx *gorm.DB) error {
		var err error
		cfg, err = getSystemConfig(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetReferralCommissionRate updates the global commission rate. Applies to
// every future BUY approval; already-settled transactions are untouched.
func (l *Ledger) SetReferralCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidRate
	}
	err := l.withTx(func(tx *gorm.DB) error {
		cfg, err := getSystemConfig(tx)
		if err != nil {
			return err
		}
		cfg.ReferralCommissionRate = rate
		return tx.Save(cfg).Error
	})
	if err != nil {
		return err
	}

	log.Printf("Referral commission rate set to %s", rate)
	return nil
}

// PaymentMethods returns the admin-maintained payment instructions
func (l *Ledger) PaymentMethods() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := l.db.Order("id ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// UpdatePaymentMethod replaces the details text of one payment method
func (l *Ledger) UpdatePaymentMethod(id, details string) error {
	return l.withTx(func(tx *gorm.DB) error {
		var method models.PaymentMethod
		if err := tx.Where("id = ?", id).First(&method).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentMethodNotFound
			}
			return err
		}
		method.Details = details
		return tx.Save(&method).Error
	})
}

func getSystemConfig(tx *gorm.DB) (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	if err := tx.First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = models.SystemConfig{ReferralCommissionRate: decimal.NewFromFloat(0.05)}
			if err := tx.Create(&cfg).Error; err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}
