package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auro-gold/internal/models"
)

// Graduated sell minimums: the first sell may be small, every later one
// must meet the standard limit. PENDING sells count as prior sells.
var (
	minFirstSell    = decimal.NewFromFloat(0.05)
	minStandardSell = decimal.NewFromFloat(1.00)
)

// Ledger is the single entry point for every mutating operation against
// accounts, transactions and subscriptions. One mutex serializes all
// mutations; each runs inside a single database transaction so either all
// effects apply or none do.
type Ledger struct {
	db     *gorm.DB
	prices *PriceService
	mu     sync.Mutex

	signupBonus   decimal.Decimal
	activationFee decimal.Decimal
}

// NewLedger creates a new Ledger facade
func NewLedger(db *gorm.DB, prices *PriceService, signupBonus, activationFee decimal.Decimal) *Ledger {
	return &Ledger{
		db:            db,
		prices:        prices,
		signupBonus:   signupBonus,
		activationFee: activationFee,
	}
}

// withTx serializes a mutating operation and runs it atomically
func (l *Ledger) withTx(fn func(tx *gorm.DB) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.Transaction(fn)
}

// SubmitBuy creates a PENDING BUY transaction snapshotting the current buy
// price. Gold is credited only on approval: the payment is verified by an
// admin before custody changes hands.
func (l *Ledger) SubmitBuy(userID uint, grams decimal.Decimal, paymentMethodID, screenshotURL string) (*models.Transaction, error) {
	if !grams.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var created models.Transaction
	err := l.withTx(func(tx *gorm.DB) error {
		user, err := l.reconcileUser(tx, userID, time.Now())
		if err != nil {
			return err
		}

		quote, err := getQuote(tx)
		if err != nil {
			return err
		}

		methodName := "External"
		var method models.PaymentMethod
		if err := tx.Where("id = ?", paymentMethodID).First(&method).Error; err == nil {
			methodName = method.Name
		}

		created = models.Transaction{
			UserID:        user.ID,
			UserName:      user.Name,
			Type:          models.TxBuy,
			Status:        models.TxPending,
			AmountGold:    grams,
			AmountFiat:    grams.Mul(quote.Buy),
			PricePerGram:  quote.Buy,
			PaymentMethod: methodName,
			ScreenshotURL: screenshotURL,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("BUY submitted: user=%d grams=%s fiat=%s", userID, grams, created.AmountFiat)
	return &created, nil
}

// SubmitSell debits gold immediately and creates a PENDING SELL at the
// current sell price. The optimistic debit prevents the same gold from
// backing multiple concurrent sell requests; a rejection refunds it.
func (l *Ledger) SubmitSell(userID uint, grams decimal.Decimal, payoutDetails string) (*models.Transaction, error) {
	if !grams.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var created models.Transaction
	err := l.withTx(func(tx *gorm.DB) error {
		user, err := l.reconcileUser(tx, userID, time.Now())
		if err != nil {
			return err
		}

		var priorSells int64
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND status IN ?",
				userID, models.TxSell, []string{models.TxCompleted, models.TxPending}).
			Count(&priorSells).Error; err != nil {
			return err
		}

		firstSell := priorSells == 0
		minimum := minStandardSell
		if firstSell {
			minimum = minFirstSell
		}
		if grams.LessThan(minimum) {
			return &BelowMinimumSellError{Minimum: minimum, FirstSell: firstSell}
		}

		available := user.AvailableGold()
		if available.LessThan(grams) {
			return &InsufficientGoldError{Available: available, Required: grams}
		}

		quote, err := getQuote(tx)
		if err != nil {
			return err
		}

		user.BalanceGold = user.BalanceGold.Sub(grams)
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		created = models.Transaction{
			UserID:        user.ID,
			UserName:      user.Name,
			Type:          models.TxSell,
			Status:        models.TxPending,
			AmountGold:    grams,
			AmountFiat:    grams.Mul(quote.Sell),
			PricePerGram:  quote.Sell,
			PayoutDetails: payoutDetails,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("SELL submitted: user=%d grams=%s fiat=%s", userID, grams, created.AmountFiat)
	return &created, nil
}

// Approve settles a PENDING transaction. BUY credits the snapshotted gold
// and pays referral commission; SELL credits the snapshotted fiat (gold was
// debited at submission); ACTIVATION enables the referral program.
func (l *Ledger) Approve(txID string) (*models.Transaction, error) {
	var settled models.Transaction
	err := l.withTx(func(tx *gorm.DB) error {
		t, err := getTransaction(tx, txID)
		if err != nil {
			return err
		}
		if t.Status != models.TxPending {
			return ErrNotPending
		}

		user, err := getUser(tx, t.UserID)
		if err != nil {
			return err
		}

		switch t.Type {
		case models.TxBuy:
			user.BalanceGold = user.BalanceGold.Add(t.AmountGold)
			if err := tx.Save(user).Error; err != nil {
				return err
			}
			if err := l.applyPurchaseCommission(tx, user, t.AmountFiat); err != nil {
				return err
			}
		case models.TxSell:
			user.BalanceFiat = user.BalanceFiat.Add(t.AmountFiat)
			if err := tx.Save(user).Error; err != nil {
				return err
			}
		case models.TxActivation:
			if err := l.approveActivation(tx, user); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown transaction type %q", t.Type)
		}

		t.Status = models.TxCompleted
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		settled = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Transaction %s approved (%s, user %d)", settled.ID, settled.Type, settled.UserID)
	return &settled, nil
}

// Reject marks a PENDING transaction REJECTED. A rejected SELL refunds the
// previously debited gold; a rejected BUY never touched balances; a
// rejected ACTIVATION resets the referral status so the user can retry.
func (l *Ledger) Reject(txID string) (*models.Transaction, error) {
	var settled models.Transaction
	err := l.withTx(func(tx *gorm.DB) error {
		t, err := getTransaction(tx, txID)
		if err != nil {
			return err
		}
		if t.Status != models.TxPending {
			return ErrNotPending
		}

		user, err := getUser(tx, t.UserID)
		if err != nil {
			return err
		}

		switch t.Type {
		case models.TxSell:
			user.BalanceGold = user.BalanceGold.Add(t.AmountGold)
			if err := tx.Save(user).Error; err != nil {
				return err
			}
		case models.TxActivation:
			if err := l.rejectActivation(tx, user); err != nil {
				return err
			}
		}

		t.Status = models.TxRejected
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		settled = *t
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Transaction %s rejected (%s, user %d)", settled.ID, settled.Type, settled.UserID)
	return &settled, nil
}

// ListTransactions returns transactions newest first, scoped to a user when
// userID is non-nil
func (l *Ledger) ListTransactions(userID *uint) ([]models.Transaction, error) {
	q := l.db.Order("created_at DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var txs []models.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// PendingTransactions returns all PENDING transactions, oldest first
func (l *Ledger) PendingTransactions() ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := l.db.Where("status = ?", models.TxPending).
		Order("created_at ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func getUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

func getTransaction(tx *gorm.DB, txID string) (*models.Transaction, error) {
	var t models.Transaction
	if err := tx.Where("id = ?", txID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

func getQuote(tx *gorm.DB) (*models.GoldPrice, error) {
	var price models.GoldPrice
	if err := tx.First(&price).Error; err != nil {
		return nil, fmt.Errorf("failed to load gold price: %w", err)
	}
	return &price, nil
}
