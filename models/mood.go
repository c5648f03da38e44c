package models

import (
	"fmt"
	"strings"
	"time"
)

type MoodLabel string

const (
	MoodHappy   MoodLabel = "happy"
	MoodCalm    MoodLabel = "calm"
	MoodNeutral MoodLabel = "neutral"
	MoodSad     MoodLabel = "sad"
	MoodAngry   MoodLabel = "angry"
	MoodTired   MoodLabel = "tired"
)

// MoodEmojis maps mood labels to the emojis shown in the mobile client.
var MoodEmojis = map[MoodLabel]string{
	MoodHappy:   "😊",
	MoodCalm:    "😌",
	MoodNeutral: "😐",
	MoodSad:     "😔",
	MoodAngry:   "😡",
	MoodTired:   "😴",
}

func ParseMoodLabel(input string) (MoodLabel, error) {
	m := MoodLabel(strings.ToLower(strings.TrimSpace(input)))
	if _, ok := MoodEmojis[m]; !ok {
		return "", fmt.Errorf("invalid mood: %q", input)
	}
	return m, nil
}

// MoodEntry is a single mood log. At most one entry per user per calendar day;
// logging again the same day updates the existing entry in place.
type MoodEntry struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Mood      MoodLabel `gorm:"type:varchar(16);not null" json:"mood"`
	Emoji     string    `gorm:"size:10" json:"emoji"`
	Note      string    `gorm:"type:text" json:"note"`
	Journal   string    `gorm:"type:text" json:"journal"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}
