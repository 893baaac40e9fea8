package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auro-gold/internal/models"
)

func setupBenchmarkDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		b.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.GoldPrice{},
		&models.PricePoint{},
		&models.MiningPackage{},
		&models.MiningSubscription{},
		&models.Transaction{},
		&models.ReferralCode{},
		&models.SystemConfig{},
		&models.PaymentMethod{},
	)
	if err != nil {
		b.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedSubscriptions(db *gorm.DB, userID uint, count int) {
	user := models.User{
		ID:             userID,
		Name:           "Bench",
		Email:          fmt.Sprintf("bench%d@test.com", userID),
		PasswordHash:   "x",
		Role:           models.RoleUser,
		BalanceGold:    decimal.NewFromInt(int64(count)),
		LockedGold:     decimal.NewFromInt(int64(count)),
		ReferralStatus: models.ReferralInactive,
	}
	db.Create(&user)

	now := time.Now()
	subs := make([]models.MiningSubscription, count)
	for i := 0; i < count; i++ {
		subs[i] = models.MiningSubscription{
			UserID:           userID,
			PackageID:        1,
			PackageName:      "Bench Rig",
			PackageCost:      decimal.NewFromInt(1000),
			DailyProfit:      decimal.NewFromInt(5),
			LockedGoldAmount: decimal.NewFromInt(1),
			StartDate:        now.Add(-48 * time.Hour),
			EndDate:          now.AddDate(0, 0, models.SubscriptionTermDays),
			LastPayout:       now.Add(-36 * time.Hour),
			Status:           models.SubscriptionActive,
		}
	}
	db.CreateInBatches(subs, 100)
}

// BenchmarkReconcile measures the lazy accrual pass against accounts with a
// growing number of active subscriptions, each with one day of profit due.
func BenchmarkReconcile(b *testing.B) {
	counts := []int{1, 10, 100}

	for _, count := range counts {
		b.Run(fmt.Sprintf("Subs-%d", count), func(b *testing.B) {
			db := setupBenchmarkDB(b)
			prices := NewPriceService(db)
			ledger := NewLedger(db, prices, decimal.NewFromInt(50), decimal.NewFromInt(500))
			seedSubscriptions(db, 1, count)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ledger.Reconcile(1); err != nil {
					b.Fatalf("Reconcile failed: %v", err)
				}
			}
		})
	}
}
