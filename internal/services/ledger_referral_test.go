package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"auro-gold/internal/models"
)

func TestActivationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 13500, 12800)

	user, err := ledger.Register("A", "a@test.com", "secret1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tx, err := ledger.RequestActivation(user.ID, "proof.png")
	if err != nil {
		t.Fatalf("RequestActivation failed: %v", err)
	}
	if tx.Type != models.TxActivation {
		t.Errorf("expected ACTIVATION type, got %s", tx.Type)
	}
	if !tx.AmountFiat.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected activation fee 500, got %s", tx.AmountFiat)
	}
	if got := reloadUser(t, db, user.ID).ReferralStatus; got != models.ReferralPending {
		t.Errorf("expected PENDING status, got %s", got)
	}

	// A second request while one is pending is refused
	if _, err := ledger.RequestActivation(user.ID, ""); !errors.Is(err, ErrActivationPending) {
		t.Errorf("expected ErrActivationPending, got %v", err)
	}

	// Rejection returns the user to INACTIVE and allows a retry
	if _, err := ledger.Reject(tx.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if got := reloadUser(t, db, user.ID).ReferralStatus; got != models.ReferralInactive {
		t.Errorf("expected INACTIVE after rejection, got %s", got)
	}

	tx, err = ledger.RequestActivation(user.ID, "proof2.png")
	if err != nil {
		t.Fatalf("second RequestActivation failed: %v", err)
	}
	if _, err := ledger.Approve(tx.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if got := reloadUser(t, db, user.ID).ReferralStatus; got != models.ReferralActive {
		t.Errorf("expected ACTIVE after approval, got %s", got)
	}

	// Approval issues four codes sharing a base token
	codes, err := ledger.ReferralCodes(user.ID)
	if err != nil {
		t.Fatalf("ReferralCodes failed: %v", err)
	}
	if len(codes) != 4 {
		t.Fatalf("expected 4 codes, got %d", len(codes))
	}
	base := strings.SplitN(codes[0].Code, "-", 2)[0]
	for _, c := range codes {
		if !strings.HasPrefix(c.Code, base+"-") {
			t.Errorf("code %s does not share base %s", c.Code, base)
		}
		if c.IsUsed {
			t.Errorf("freshly issued code %s marked used", c.Code)
		}
	}

	// Once ACTIVE, further activation requests are refused
	if _, err := ledger.RequestActivation(user.ID, ""); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("expected ErrAlreadyActive, got %v", err)
	}
}

func TestReferralCodeSingleUse(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 13500, 12800)

	referrer, err := ledger.Register("R", "r@test.com", "secret1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tx, err := ledger.RequestActivation(referrer.ID, "")
	if err != nil {
		t.Fatalf("RequestActivation failed: %v", err)
	}
	if _, err := ledger.Approve(tx.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	codes, _ := ledger.ReferralCodes(referrer.ID)

	first, err := ledger.Register("U1", "u1@test.com", "secret1", codes[0].Code)
	if err != nil {
		t.Fatalf("register with code failed: %v", err)
	}
	if first.ReferredByID == nil || *first.ReferredByID != referrer.ID {
		t.Errorf("referred_by not recorded")
	}

	// Same code again is invalid, and the failed registration does not persist
	if _, err := ledger.Register("U2", "u2@test.com", "secret1", codes[0].Code); !errors.Is(err, ErrInvalidReferralCode) {
		t.Errorf("expected ErrInvalidReferralCode, got %v", err)
	}
	var count int64
	db.Model(&models.User{}).Where("email = ?", "u2@test.com").Count(&count)
	if count != 0 {
		t.Errorf("failed registration left a user row")
	}

	// A sibling code still works
	if _, err := ledger.Register("U3", "u3@test.com", "secret1", codes[1].Code); err != nil {
		t.Errorf("register with sibling code failed: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 13500, 12800)

	if _, err := ledger.Register("A", "a@test.com", "secret1", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// Email comparison is case-insensitive
	if _, err := ledger.Register("B", "A@Test.com", "secret1", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := ledger.Register("C", "c@test.com", "secret1", "BOGUS-01"); !errors.Is(err, ErrInvalidReferralCode) {
		t.Errorf("expected ErrInvalidReferralCode, got %v", err)
	}
}

func TestLoginCredentials(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 13500, 12800)

	if _, err := ledger.Register("A", "a@test.com", "secret1", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := ledger.Login("a@test.com", "secret1"); err != nil {
		t.Errorf("login failed: %v", err)
	}
	if _, err := ledger.Login("a@test.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := ledger.Login("nobody@test.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCommissionUsesConfiguredRate(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 16000, 15000)
	db.Create(&models.SystemConfig{ReferralCommissionRate: decimal.NewFromFloat(0.10)})

	referrer, err := ledger.Register("R", "r@test.com", "secret1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tx, _ := ledger.RequestActivation(referrer.ID, "")
	if _, err := ledger.Approve(tx.ID); err != nil {
		t.Fatalf("activation approve failed: %v", err)
	}
	codes, _ := ledger.ReferralCodes(referrer.ID)
	user, err := ledger.Register("U", "u@test.com", "secret1", codes[0].Code)
	if err != nil {
		t.Fatalf("register U failed: %v", err)
	}

	baseline := reloadUser(t, db, referrer.ID).BalanceGold

	buyTx, err := ledger.SubmitBuy(user.ID, decimal.NewFromInt(1), "bank", "")
	if err != nil {
		t.Fatalf("SubmitBuy failed: %v", err)
	}
	if _, err := ledger.Approve(buyTx.ID); err != nil {
		t.Fatalf("buy approve failed: %v", err)
	}

	// 16000 fiat * 10% at buy 16000 = 0.1g
	earned := reloadUser(t, db, referrer.ID).BalanceGold.Sub(baseline)
	expected := decimal.NewFromInt(16000).Mul(decimal.NewFromFloat(0.10)).Div(decimal.NewFromInt(16000))
	if !earned.Equal(expected) {
		t.Errorf("expected commission %s, got %s", expected, earned)
	}
}

func TestNoCommissionWithoutReferrer(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(t, db)
	seedQuote(t, db, 13500, 12800)

	user, err := ledger.Register("U", "u@test.com", "secret1", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tx, err := ledger.SubmitBuy(user.ID, decimal.NewFromInt(1), "bank", "")
	if err != nil {
		t.Fatalf("SubmitBuy failed: %v", err)
	}
	if _, err := ledger.Approve(tx.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	// Nothing to assert beyond the approval succeeding without a referrer row
	if got := reloadUser(t, db, user.ID).BalanceGold; !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1g, got %s", got)
	}
}
