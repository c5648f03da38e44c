package services

import (
	"testing"

	"wellness-reward-system/models"

	"github.com/google/uuid"
)

func TestLeaderboardSnapshotRanksByBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)

	users := []struct {
		name    string
		email   string
		balance int64
	}{
		{"Asha", "asha@example.com", 120},
		{"", "noname@example.com", 200},
		{"Ravi", "ravi@example.com", 40},
	}
	for _, u := range users {
		userID := uuid.NewString()
		if err := db.Create(&models.User{ID: userID, Email: u.email, Name: u.name}).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
		if err := db.Create(&models.HealCoinLedger{
			ID:      uuid.NewString(),
			UserID:  userID,
			Balance: u.balance,
			XP:      u.balance * XPPerCoin,
			Badges:  models.BadgeList{},
		}).Error; err != nil {
			t.Fatalf("create ledger: %v", err)
		}
	}

	if err := svc.RefreshSnapshot(); err != nil {
		t.Fatalf("RefreshSnapshot: %v", err)
	}

	var entries []models.LeaderboardEntry
	if err := db.Order("rank ASC").Find(&entries).Error; err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("%d snapshot rows, want 3", len(entries))
	}
	if entries[0].HealCoins != 200 || entries[1].HealCoins != 120 || entries[2].HealCoins != 40 {
		t.Fatalf("balances in order %d/%d/%d, want 200/120/40",
			entries[0].HealCoins, entries[1].HealCoins, entries[2].HealCoins)
	}
	// Users without a display name fall back to their email.
	if entries[0].UserName != "noname@example.com" {
		t.Fatalf("top userName=%q, want email fallback", entries[0].UserName)
	}
	if entries[1].UserName != "Asha" {
		t.Fatalf("second userName=%q, want Asha", entries[1].UserName)
	}

	// Re-running replaces the snapshot instead of appending.
	if err := svc.RefreshSnapshot(); err != nil {
		t.Fatalf("second RefreshSnapshot: %v", err)
	}
	var count int64
	db.Model(&models.LeaderboardEntry{}).Count(&count)
	if count != 3 {
		t.Fatalf("%d rows after second refresh, want 3", count)
	}
}
