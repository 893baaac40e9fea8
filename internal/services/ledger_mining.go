package services

import (
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auro-gold/internal/models"
)

// ActivateMining locks gold worth the package cost (valued at the current
// sell price) and starts a 30-day subscription. Package name, cost and
// daily profit are snapshotted so later package edits change nothing.
func (l *Ledger) ActivateMining(userID, packageID uint) (*models.MiningSubscription, error) {
	var created models.MiningSubscription
	err := l.withTx(func(tx *gorm.DB) error {
		now := time.Now()
		user, err := l.reconcileUser(tx, userID, now)
		if err != nil {
			return err
		}

		var pkg models.MiningPackage
		if err := tx.First(&pkg, packageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return err
		}

		quote, err := getQuote(tx)
		if err != nil {
			return err
		}

		requiredGold := pkg.Cost.Div(quote.Sell)
		available := user.AvailableGold()
		if available.LessThan(requiredGold) {
			return &InsufficientGoldError{Available: available, Required: requiredGold}
		}

		user.LockedGold = user.LockedGold.Add(requiredGold)
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		created = models.MiningSubscription{
			UserID:           user.ID,
			PackageID:        pkg.ID,
			PackageName:      pkg.Name,
			PackageCost:      pkg.Cost,
			DailyProfit:      pkg.DailyProfit,
			LockedGoldAmount: requiredGold,
			StartDate:        now,
			EndDate:          now.AddDate(0, 0, models.SubscriptionTermDays),
			LastPayout:       now,
			Status:           models.SubscriptionActive,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Mining activated: user=%d package=%q locked=%sg", userID, created.PackageName, created.LockedGoldAmount)
	return &created, nil
}

// Reconcile runs the lazy accrual pass for one account and returns the
// account afterwards. Safe to call any number of times: within the same
// elapsed day it credits nothing.
func (l *Ledger) Reconcile(userID uint) (*models.User, error) {
	var user *models.User
	err := l.withTx(func(tx *gorm.DB) error {
		var err error
		user, err = l.reconcileUser(tx, userID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// reconcileUser catches up every ACTIVE subscription of the account inside
// the caller's transaction: credits whole elapsed days of profit, advances
// the payout cursor by exactly those days, and releases the lock once the
// end date has passed. A subscription may take its final payout and expire
// in the same pass.
func (l *Ledger) reconcileUser(tx *gorm.DB, userID uint, now time.Time) (*models.User, error) {
	user, err := getUser(tx, userID)
	if err != nil {
		return nil, err
	}

	var subs []models.MiningSubscription
	if err := tx.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Find(&subs).Error; err != nil {
		return nil, err
	}

	changed := false
	for i := range subs {
		sub := &subs[i]

		daysElapsed := int(now.Sub(sub.LastPayout) / (24 * time.Hour))
		if daysElapsed >= 1 {
			profit := sub.DailyProfit.Mul(decimal.NewFromInt(int64(daysElapsed)))
			user.BalanceFiat = user.BalanceFiat.Add(profit)
			// Advance by whole days only; resetting to now would drop the
			// fractional remainder and drift over time.
			sub.LastPayout = sub.LastPayout.Add(time.Duration(daysElapsed) * 24 * time.Hour)
			if err := tx.Save(sub).Error; err != nil {
				return nil, err
			}
			changed = true
			log.Printf("Mining payout: user=%d sub=%s days=%d profit=%s", userID, sub.ID, daysElapsed, profit)
		}

		if !now.Before(sub.EndDate) {
			user.LockedGold = user.LockedGold.Sub(sub.LockedGoldAmount)
			if user.LockedGold.IsNegative() {
				user.LockedGold = decimal.Zero
			}
			sub.Status = models.SubscriptionCompleted
			if err := tx.Save(sub).Error; err != nil {
				return nil, err
			}
			changed = true
			log.Printf("Mining subscription %s completed, released %sg for user %d", sub.ID, sub.LockedGoldAmount, userID)
		}
	}

	if changed {
		if err := tx.Save(user).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Subscriptions returns a user's mining subscriptions, newest first
func (l *Ledger) Subscriptions(userID uint) ([]models.MiningSubscription, error) {
	var subs []models.MiningSubscription
	if err := l.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Packages returns all mining package templates
func (l *Ledger) Packages() ([]models.MiningPackage, error) {
	var pkgs []models.MiningPackage
	if err := l.db.Order("cost ASC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// UpsertPackage creates or updates a package template. Running
// subscriptions keep their snapshot and are unaffected.
func (l *Ledger) UpsertPackage(pkg *models.MiningPackage) error {
	if !pkg.Cost.IsPositive() || !pkg.DailyProfit.IsPositive() {
		return ErrInvalidAmount
	}
	return l.withTx(func(tx *gorm.DB) error {
		if pkg.ID == 0 {
			return tx.Create(pkg).Error
		}
		var existing models.MiningPackage
		if err := tx.First(&existing, pkg.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return err
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"name":         pkg.Name,
			"cost":         pkg.Cost,
			"daily_profit": pkg.DailyProfit,
		}).Error
	})
}
