package models

import (
	"time"
)

// LeaderboardEntry is a snapshot row of the HealCoin leaderboard, rebuilt
// periodically by the scheduler so reads don't rescan the ledger table.
type LeaderboardEntry struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Rank       int       `gorm:"index" json:"rank"`
	UserID     string    `gorm:"uniqueIndex;not null" json:"user_id"`
	UserName   string    `json:"userName"`
	HealCoins  int64     `json:"healCoins"`
	XP         int64     `json:"xp"`
	SnapshotAt time.Time `json:"snapshot_at"`
}
