package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dchest/uniuri"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auro-gold/internal/models"
)

const codesPerActivation = 4

var refCodeChars = []byte("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// RequestActivation creates a PENDING ACTIVATION transaction for the fixed
// fee and flips the account's referral status to PENDING. Only accounts
// that have never activated (or were rejected) may request.
func (l *Ledger) RequestActivation(userID uint, screenshotURL string) (*models.Transaction, error) {
	var created models.Transaction
	err := l.withTx(func(tx *gorm.DB) error {
		user, err := l.reconcileUser(tx, userID, time.Now())
		if err != nil {
			return err
		}

		switch user.ReferralStatus {
		case models.ReferralActive:
			return ErrAlreadyActive
		case models.ReferralPending:
			return ErrActivationPending
		}

		user.ReferralStatus = models.ReferralPending
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		created = models.Transaction{
			UserID:        user.ID,
			UserName:      user.Name,
			Type:          models.TxActivation,
			Status:        models.TxPending,
			AmountFiat:    l.activationFee,
			ScreenshotURL: screenshotURL,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Activation requested: user=%d fee=%s", userID, l.activationFee)
	return &created, nil
}

// ReferralCodes returns all codes owned by a user
func (l *Ledger) ReferralCodes(userID uint) ([]models.ReferralCode, error) {
	var codes []models.ReferralCode
	if err := l.db.Where("user_id = ?", userID).Order("id ASC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// approveActivation marks the account ACTIVE and issues four single-use
// codes derived from one fresh base token, suffixed -01..-04. Reached only
// through the PENDING-only approval gate, so it runs once per transaction.
func (l *Ledger) approveActivation(tx *gorm.DB, user *models.User) error {
	user.ReferralStatus = models.ReferralActive
	if err := tx.Save(user).Error; err != nil {
		return err
	}

	base := uniuri.NewLenChars(6, refCodeChars)
	for i := 1; i <= codesPerActivation; i++ {
		code := models.ReferralCode{
			UserID: user.ID,
			Code:   fmt.Sprintf("%s-%02d", base, i),
		}
		if err := tx.Create(&code).Error; err != nil {
			return fmt.Errorf("failed to issue referral code: %w", err)
		}
	}

	log.Printf("Activation approved: user=%d, %d codes issued", user.ID, codesPerActivation)
	return nil
}

// rejectActivation resets the referral status so the user can retry
func (l *Ledger) rejectActivation(tx *gorm.DB, user *models.User) error {
	user.ReferralStatus = models.ReferralInactive
	return tx.Save(user).Error
}

// redeemCode consumes an unused referral code on behalf of a newly
// registered user. Marking the code used and crediting the referrer's
// signup bonus happen in the caller's transaction, atomically with the
// registration itself.
func (l *Ledger) redeemCode(tx *gorm.DB, code string, newUser *models.User) error {
	var refCode models.ReferralCode
	if err := tx.Where("code = ? AND is_used = ?", code, false).First(&refCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidReferralCode
		}
		return err
	}

	now := time.Now()
	refCode.IsUsed = true
	refCode.UsedByUserID = &newUser.ID
	refCode.UsedAt = &now
	if err := tx.Save(&refCode).Error; err != nil {
		return err
	}

	newUser.ReferredByID = &refCode.UserID
	if err := tx.Save(newUser).Error; err != nil {
		return err
	}

	// Signup bonus: fixed fiat amount converted to gold at the cost of
	// acquiring gold right now, i.e. the current buy price.
	quote, err := getQuote(tx)
	if err != nil {
		return err
	}
	bonusGold := l.signupBonus.Div(quote.Buy)

	referrer, err := getUser(tx, refCode.UserID)
	if err != nil {
		return err
	}
	referrer.BalanceGold = referrer.BalanceGold.Add(bonusGold)
	if err := tx.Save(referrer).Error; err != nil {
		return err
	}

	log.Printf("Referral code %s redeemed by user %d, bonus %sg to user %d",
		code, newUser.ID, bonusGold, referrer.ID)
	return nil
}

// applyPurchaseCommission credits the buyer's referrer a share of an
// approved BUY. The fiat base is the transaction snapshot, but conversion
// to gold uses the current buy price at approval time, not the historical
// one. No-ops when the buyer has no referrer.
func (l *Ledger) applyPurchaseCommission(tx *gorm.DB, buyer *models.User, amountFiat decimal.Decimal) error {
	if buyer.ReferredByID == nil {
		return nil
	}

	cfg, err := getSystemConfig(tx)
	if err != nil {
		return err
	}

	commissionFiat := amountFiat.Mul(cfg.ReferralCommissionRate)
	if !commissionFiat.IsPositive() {
		return nil
	}

	quote, err := getQuote(tx)
	if err != nil {
		return err
	}
	commissionGold := commissionFiat.Div(quote.Buy)

	referrer, err := getUser(tx, *buyer.ReferredByID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			log.Printf("Warning: referrer %d of user %d not found, skipping commission", *buyer.ReferredByID, buyer.ID)
			return nil
		}
		return err
	}

	referrer.BalanceGold = referrer.BalanceGold.Add(commissionGold)
	if err := tx.Save(referrer).Error; err != nil {
		return err
	}

	log.Printf("Commission %sg credited to referrer %d (buyer %d, base %s)",
		commissionGold, referrer.ID, buyer.ID, amountFiat)
	return nil
}
