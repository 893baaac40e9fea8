package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"auro-gold/internal/models"
)

func seedPackage(t *testing.T, db *gorm.DB, name string, cost, profit int64) *models.MiningPackage {
	pkg := models.MiningPackage{
		Name:        name,
		Cost:        decimal.NewFromInt(cost),
		DailyProfit: decimal.NewFromInt(profit),
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("failed to seed package: %v", err)
	}
	return &pkg
}

func TestActivateMiningLocksGoldAtSellPrice(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 1100, 1000)
	pkg := seedPackage(t, db, "Rig", 1000, 5)
	user := createTestUser(t, db, "miner@test.com", 3)

	sub, err := ledger.ActivateMining(user.ID, pkg.ID)
	if err != nil {
		t.Fatalf("ActivateMining failed: %v", err)
	}

	// requiredGold = cost / sell price = 1000 / 1000
	if !sub.LockedGoldAmount.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1g locked, got %s", sub.LockedGoldAmount)
	}
	if sub.Status != models.SubscriptionActive {
		t.Errorf("expected ACTIVE, got %s", sub.Status)
	}
	if got := sub.EndDate.Sub(sub.StartDate); got < 29*24*time.Hour || got > 31*24*time.Hour {
		t.Errorf("expected ~30 day term, got %s", got)
	}

	after := reloadUser(t, db, user.ID)
	if !after.LockedGold.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected user lock 1g, got %s", after.LockedGold)
	}
	if !after.BalanceGold.Equal(decimal.NewFromInt(3)) {
		t.Errorf("activation must not change total balance, got %s", after.BalanceGold)
	}
}

func TestActivateMiningRequiresAvailableGold(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 1100, 1000)
	pkg := seedPackage(t, db, "Rig", 1000, 5)
	user := createTestUser(t, db, "miner@test.com", 0.5)

	var insufficient *InsufficientGoldError
	if _, err := ledger.ActivateMining(user.ID, pkg.ID); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientGoldError, got %v", err)
	}

	if _, err := ledger.ActivateMining(user.ID, 9999); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestReconcileCreditsWholeDaysOnce(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 1100, 1000)
	pkg := seedPackage(t, db, "Rig", 1000, 5)
	user := createTestUser(t, db, "miner@test.com", 2)

	sub, err := ledger.ActivateMining(user.ID, pkg.ID)
	if err != nil {
		t.Fatalf("ActivateMining failed: %v", err)
	}

	// Backdate the last payout by 2.5 days: exactly 2 whole days are due
	backdated := time.Now().Add(-60 * time.Hour)
	db.Model(&models.MiningSubscription{}).Where("id = ?", sub.ID).
		Update("last_payout", backdated)

	if _, err := ledger.Reconcile(user.ID); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := reloadUser(t, db, user.ID).BalanceFiat; !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected 2 days * 5 = 10 fiat, got %s", got)
	}

	// The payout marker advances by whole days, preserving the fraction
	var updated models.MiningSubscription
	db.First(&updated, "id = ?", sub.ID)
	expectedPayout := backdated.Add(48 * time.Hour)
	if diff := updated.LastPayout.Sub(expectedPayout); diff < -time.Second || diff > time.Second {
		t.Errorf("expected last payout %s, got %s", expectedPayout, updated.LastPayout)
	}

	// Immediate re-reconcile credits nothing further
	if _, err := ledger.Reconcile(user.ID); err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if got := reloadUser(t, db, user.ID).BalanceFiat; !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("reconcile is not idempotent: got %s", got)
	}
}

func TestReconcileReleasesExpiredLockOnce(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 1100, 1000)
	pkg := seedPackage(t, db, "Rig", 1000, 5)
	user := createTestUser(t, db, "miner@test.com", 2)

	sub, err := ledger.ActivateMining(user.ID, pkg.ID)
	if err != nil {
		t.Fatalf("ActivateMining failed: %v", err)
	}

	// Push the whole subscription into the past
	now := time.Now()
	db.Model(&models.MiningSubscription{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
		"start_date":  now.Add(-31 * 24 * time.Hour),
		"end_date":    now.Add(-24 * time.Hour),
		"last_payout": now.Add(-24 * time.Hour),
	})

	if _, err := ledger.Reconcile(user.ID); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	after := reloadUser(t, db, user.ID)
	if !after.LockedGold.IsZero() {
		t.Errorf("expected lock released, got %s", after.LockedGold)
	}

	var updated models.MiningSubscription
	db.First(&updated, "id = ?", sub.ID)
	if updated.Status != models.SubscriptionCompleted {
		t.Errorf("expected COMPLETED, got %s", updated.Status)
	}

	// A second pass must not release again or go negative
	if _, err := ledger.Reconcile(user.ID); err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if got := reloadUser(t, db, user.ID).LockedGold; !got.IsZero() {
		t.Errorf("expected lock to stay zero, got %s", got)
	}
}

func TestUpsertPackageValidation(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)

	if err := ledger.UpsertPackage(&models.MiningPackage{
		Name: "Bad", Cost: decimal.Zero, DailyProfit: decimal.NewFromInt(1),
	}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero cost, got %v", err)
	}

	pkg := models.MiningPackage{
		Name: "Rig", Cost: decimal.NewFromInt(1000), DailyProfit: decimal.NewFromInt(5),
	}
	if err := ledger.UpsertPackage(&pkg); err != nil {
		t.Fatalf("UpsertPackage create failed: %v", err)
	}

	pkg.DailyProfit = decimal.NewFromInt(7)
	if err := ledger.UpsertPackage(&pkg); err != nil {
		t.Fatalf("UpsertPackage update failed: %v", err)
	}

	pkgs, err := ledger.Packages()
	if err != nil || len(pkgs) != 1 {
		t.Fatalf("expected 1 package, got %d (err %v)", len(pkgs), err)
	}
	if !pkgs[0].DailyProfit.Equal(decimal.NewFromInt(7)) {
		t.Errorf("expected updated profit 7, got %s", pkgs[0].DailyProfit)
	}
}
