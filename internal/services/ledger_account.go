package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"auro-gold/internal/models"
	"auro-gold/internal/utils"
)

// Register creates a new USER account with zero balances. When a referral
// code is supplied it is consumed in the same transaction: the code is
// marked used, the referrer recorded and the signup bonus credited — or the
// whole registration fails.
func (l *Ledger) Register(name, email, password, referralCode string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = l.withTx(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user = models.User{
			Name:           name,
			Email:          email,
			PasswordHash:   hash,
			Role:           models.RoleUser,
			ReferralStatus: models.ReferralInactive,
			AvatarURL:      fmt.Sprintf("https://picsum.photos/seed/%s/200", email),
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if referralCode != "" {
			if err := l.redeemCode(tx, referralCode, &user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("New user registered: %s (ID: %d)", email, user.ID)
	return &user, nil
}

// Login verifies credentials and returns the reconciled account: missed
// mining payouts and expirations are caught up before the user sees their
// balances.
func (l *Ledger) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user *models.User
	err := l.withTx(func(tx *gorm.DB) error {
		var found models.User
		if err := tx.Where("email = ?", email).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if err := utils.ComparePasswords(found.PasswordHash, password); err != nil {
			return ErrInvalidCredentials
		}

		var err error
		user, err = l.reconcileUser(tx, found.ID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s (ID: %d)", email, user.ID)
	return user, nil
}

// GetAccount returns the account after a reconciliation pass
func (l *Ledger) GetAccount(userID uint) (*models.User, error) {
	return l.Reconcile(userID)
}

// ListUsers returns all accounts, newest first
func (l *Ledger) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := l.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
