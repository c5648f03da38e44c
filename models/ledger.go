package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BadgeList is a duplicate-free list of badge names, stored as a JSON array
// column so the whole ledger stays a single row.
type BadgeList []string

func (b BadgeList) Value() (driver.Value, error) {
	if b == nil {
		b = BadgeList{}
	}
	return json.Marshal(b)
}

func (b *BadgeList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*b = BadgeList{}
		return nil
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("unsupported badges column type %T", value)
	}
}

// Has reports badge membership. Membership, not count, gates re-awarding.
func (b BadgeList) Has(name string) bool {
	for _, existing := range b {
		if existing == name {
			return true
		}
	}
	return false
}

// HealCoinLedger is the per-user reward record (denormalized for performance).
// It is created lazily on the first reward-earning action or balance read.
//
// Version is bumped on every accrual so concurrent read-modify-write cycles
// for the same user cannot lose an update: writers issue a conditional
// UPDATE ... WHERE version = <read version> and retry when no row matches.
type HealCoinLedger struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance      int64     `json:"balance" gorm:"default:0"`
	XP           int64     `json:"xp" gorm:"default:0"`
	Streak       int       `json:"streak" gorm:"default:0"`
	LastActivity time.Time `json:"last_activity"`
	Badges       BadgeList `gorm:"type:text" json:"badges"`
	Version      int64     `gorm:"default:0" json:"-"`

	Timestamps
}

// RedemptionEntry is one line of the append-only redemption history.
type RedemptionEntry struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Item      string    `gorm:"not null" json:"item"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"date" gorm:"autoCreateTime"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
