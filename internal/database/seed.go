package database

import (
	"fmt"
	"log"
	"time"

	"auro-gold/internal/models"
	"auro-gold/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed installs the initial quote, admin account, payment methods, mining
// packages and system config. Every step is idempotent: existing rows are
// left untouched.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	if err := seedPrice(db); err != nil {
		return err
	}
	if err := seedAdmin(db, adminEmail, adminPassword); err != nil {
		return err
	}
	if err := seedPaymentMethods(db); err != nil {
		return err
	}
	if err := seedMiningPackages(db); err != nil {
		return err
	}
	return seedSystemConfig(db)
}

func seedPrice(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.GoldPrice{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	price := models.GoldPrice{
		Buy:         decimal.NewFromFloat(13500.00),
		Sell:        decimal.NewFromFloat(12800.00),
		Trend:       models.TrendUp,
		LastUpdated: time.Now(),
	}
	if err := db.Create(&price).Error; err != nil {
		return fmt.Errorf("failed to seed gold price: %w", err)
	}

	history := []models.PricePoint{
		{Date: "2023-10-20", Price: decimal.NewFromFloat(12100.00)},
		{Date: "2023-10-21", Price: decimal.NewFromFloat(12250.00)},
		{Date: "2023-10-22", Price: decimal.NewFromFloat(12200.00)},
		{Date: "2023-10-23", Price: decimal.NewFromFloat(12800.00)},
		{Date: "2023-10-24", Price: decimal.NewFromFloat(13100.00)},
		{Date: "2023-10-25", Price: decimal.NewFromFloat(13500.00)},
	}
	if err := db.Create(&history).Error; err != nil {
		return fmt.Errorf("failed to seed price history: %w", err)
	}

	log.Println("Seeded initial gold price and history")
	return nil
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Name:           "Auro Administrator",
		Email:          email,
		PasswordHash:   hash,
		Role:           models.RoleAdmin,
		ReferralStatus: models.ReferralActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Printf("Seeded admin user %s (ID: %d)", email, admin.ID)
	return nil
}

func seedPaymentMethods(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PaymentMethod{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	methods := []models.PaymentMethod{
		{
			ID:      "bank",
			Name:    "Bank Transfer",
			Details: "Bank: City Bank\nAccount: 123456789\nName: Auro Gold Ltd.\nRef: Your User ID",
		},
		{
			ID:      "bkash",
			Name:    "Bkash / Nagad",
			Details: "Send Money to: 01700000000 (Personal)\nReference: Your User ID",
		},
	}
	if err := db.Create(&methods).Error; err != nil {
		return fmt.Errorf("failed to seed payment methods: %w", err)
	}
	return nil
}

func seedMiningPackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MiningPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	packages := []models.MiningPackage{
		{Name: "Starter Rig", Cost: decimal.NewFromInt(1000), DailyProfit: decimal.NewFromInt(5)},
		{Name: "Advanced Operation", Cost: decimal.NewFromInt(10000), DailyProfit: decimal.NewFromInt(70)},
		{Name: "Industrial Complex", Cost: decimal.NewFromInt(100000), DailyProfit: decimal.NewFromInt(900)},
	}
	if err := db.Create(&packages).Error; err != nil {
		return fmt.Errorf("failed to seed mining packages: %w", err)
	}
	return nil
}

func seedSystemConfig(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SystemConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cfg := models.SystemConfig{
		ReferralCommissionRate: decimal.NewFromFloat(0.05),
	}
	if err := db.Create(&cfg).Error; err != nil {
		return fmt.Errorf("failed to seed system config: %w", err)
	}
	return nil
}
