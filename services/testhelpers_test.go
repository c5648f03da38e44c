package services

import (
	"path/filepath"
	"testing"
	"time"

	"wellness-reward-system/models"

	"github.com/glebarez/sqlite"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// testDay is an arbitrary fixed "today" for deterministic streak tests.
var testDay = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.HealCoinLedger{},
		&models.RedemptionEntry{},
		&models.MoodEntry{},
		&models.Mission{},
		&models.LeaderboardEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRewardService(t *testing.T) (*RewardService, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testDay)
	return NewRewardService(newTestDB(t), clock), clock
}

func getLedger(t *testing.T, db *gorm.DB, userID string) *models.HealCoinLedger {
	t.Helper()
	var ledger models.HealCoinLedger
	if err := db.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
		t.Fatalf("fetch ledger for %s: %v", userID, err)
	}
	return &ledger
}
