package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors surfaced verbatim to the calling layer. Every ledger
// operation fails fast and leaves state unmodified.
var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrPackageNotFound       = errors.New("mining package not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidReferralCode = errors.New("invalid or already used referral code")
	ErrAlreadyActive       = errors.New("referral program is already active")
	ErrActivationPending   = errors.New("activation request is already pending")

	ErrInvalidPrice  = errors.New("price must be positive")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidRate   = errors.New("commission rate must be between 0 and 1")

	// ErrNotPending guards the transaction state machine: PENDING is the
	// only state that admits a transition.
	ErrNotPending = errors.New("transaction is not pending")
)

// BelowMinimumSellError reports a sell below the graduated minimum. The
// first sell may be as small as 0.05g; every later sell requires 1.00g.
type BelowMinimumSellError struct {
	Minimum   decimal.Decimal
	FirstSell bool
}

func (e *BelowMinimumSellError) Error() string {
	kind := "Standard limit"
	if e.FirstSell {
		kind = "First time offer"
	}
	return fmt.Sprintf("minimum sell amount is %sg (%s)", e.Minimum.StringFixed(2), kind)
}

// InsufficientGoldError reports that an operation needs more unlocked gold
// than the account holds.
type InsufficientGoldError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientGoldError) Error() string {
	return fmt.Sprintf("insufficient available gold: have %sg, need %sg (some may be locked in mining)",
		e.Available.StringFixed(6), e.Required.StringFixed(6))
}
