package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MissionCategory string

const (
	MissionCategorySaving     MissionCategory = "Saving"
	MissionCategoryBudgeting  MissionCategory = "Budgeting"
	MissionCategoryDebtPayoff MissionCategory = "Debt Payoff"
)

func (m MissionCategory) IsValid() bool {
	switch m {
	case MissionCategorySaving, MissionCategoryBudgeting, MissionCategoryDebtPayoff:
		return true
	default:
		return false
	}
}

type MissionDifficulty string

const (
	MissionDifficultyBeginner     MissionDifficulty = "Beginner"
	MissionDifficultyIntermediate MissionDifficulty = "Intermediate"
	MissionDifficultyAdvanced     MissionDifficulty = "Advanced"
)

func (m MissionDifficulty) IsValid() bool {
	switch m {
	case MissionDifficultyBeginner, MissionDifficultyIntermediate, MissionDifficultyAdvanced:
		return true
	default:
		return false
	}
}

// MissionTask is one checklist item inside a mission.
type MissionTask struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// MissionTaskList is stored as a JSON column.
type MissionTaskList []MissionTask

func (t MissionTaskList) Value() (driver.Value, error) {
	if t == nil {
		t = MissionTaskList{}
	}
	return json.Marshal(t)
}

func (t *MissionTaskList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = MissionTaskList{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tasks column type %T", value)
	}
}

// Mission is a user-owned task with a fixed HealCoin reward.
// Completed is terminal: the only allowed transition is false to true, and it
// pays out exactly once.
type Mission struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string            `gorm:"index;not null" json:"user_id"`
	Title       string            `gorm:"not null" json:"title"`
	Slug        string            `gorm:"index" json:"slug"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Progress    int               `gorm:"default:0" json:"progress"` // 0-100
	Target      string            `gorm:"not null" json:"target"`
	Current     string            `gorm:"default:'0'" json:"current"`
	Category    MissionCategory   `gorm:"type:varchar(32);not null" json:"category"`
	Difficulty  MissionDifficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	Tasks       MissionTaskList   `gorm:"type:text" json:"tasks"`
	Reward      int64             `gorm:"not null" json:"reward"` // HealCoins paid on completion
	TimeLeft    string            `json:"time_left"`
	Completed   bool              `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
}
