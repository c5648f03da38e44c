// services/mood_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"wellness-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoodService struct {
	DB      *gorm.DB
	Rewards *RewardService
}

func NewMoodService(db *gorm.DB, rewards *RewardService) *MoodService {
	return &MoodService{DB: db, Rewards: rewards}
}

// LogMood creates or updates today's mood entry for the user. Every write,
// create or update, re-triggers the fixed 10-coin accrual: editing today's
// note still counts as activity.
func (s *MoodService) LogMood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Mood    string `json:"mood"`
		Note    string `json:"note"`
		Journal string `json:"journal"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid request body"})
	}

	mood, err := models.ParseMoodLabel(req.Mood)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid mood. Must be one of: happy, calm, neutral, sad, angry, tired",
		})
	}
	emoji := models.MoodEmojis[mood]

	now := s.Rewards.Clock.Now()
	today := truncateToDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	var entry models.MoodEntry
	findErr := s.DB.Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, today, tomorrow).
		First(&entry).Error

	var status int
	var msg string
	switch {
	case findErr == nil:
		entry.Mood = mood
		entry.Emoji = emoji
		entry.Note = req.Note
		entry.Journal = req.Journal
		entry.Timestamp = now
		if err := s.DB.Save(&entry).Error; err != nil {
			log.Printf("DB Error updating mood: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
		}
		status = fiber.StatusOK
		msg = "Mood updated successfully"
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		entry = models.MoodEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Mood:      mood,
			Emoji:     emoji,
			Note:      req.Note,
			Journal:   req.Journal,
			Timestamp: now,
		}
		if err := s.DB.Create(&entry).Error; err != nil {
			log.Printf("DB Error logging mood: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
		}
		status = fiber.StatusCreated
		msg = "Mood logged successfully"
	default:
		log.Printf("DB Error looking up today's mood: %v", findErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	if _, err := s.Rewards.accrue(s.DB, userID, EarnCoins, AccrualKindEarn); err != nil {
		log.Printf("Error accruing mood reward for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.Status(status).JSON(fiber.Map{
		"msg":  msg,
		"mood": entry,
	})
}

// GetMoods returns the user's moods from the last N days, newest first.
func (s *MoodService) GetMoods(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	limit, _ := strconv.Atoi(c.Query("limit", "7"))
	days, _ := strconv.Atoi(c.Query("days", "7"))
	if limit < 1 || limit > 100 {
		limit = 7
	}
	if days < 1 {
		days = 7
	}

	since := s.Rewards.Clock.Now().AddDate(0, 0, -days)

	var moods []models.MoodEntry
	if err := s.DB.Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&moods).Error; err != nil {
		log.Printf("DB Error fetching moods: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	return c.JSON(moods)
}

type moodStat struct {
	Mood  models.MoodLabel `json:"mood"`
	Emoji string           `json:"emoji"`
	Count int64            `json:"count"`
}

// GetMoodStats groups the last N days of moods by label with percentages.
func (s *MoodService) GetMoodStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 {
		days = 30
	}

	since := s.Rewards.Clock.Now().AddDate(0, 0, -days)

	var stats []moodStat
	if err := s.DB.Model(&models.MoodEntry{}).
		Select("mood, emoji, COUNT(*) AS count").
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Group("mood, emoji").
		Order("count DESC").
		Scan(&stats).Error; err != nil {
		log.Printf("DB Error fetching mood stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	var total int64
	for _, st := range stats {
		total += st.Count
	}

	response := make([]fiber.Map, 0, len(stats))
	for _, st := range stats {
		percentage := "0.0"
		if total > 0 {
			percentage = fmt.Sprintf("%.1f", float64(st.Count)/float64(total)*100)
		}
		response = append(response, fiber.Map{
			"mood":       st.Mood,
			"emoji":      st.Emoji,
			"count":      st.Count,
			"percentage": percentage,
		})
	}

	return c.JSON(fiber.Map{
		"totalEntries": total,
		"period":       fmt.Sprintf("%d days", days),
		"stats":        response,
	})
}

// DeleteMood removes one of the user's mood entries.
func (s *MoodService) DeleteMood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	moodID := c.Params("id")

	result := s.DB.Where("id = ? AND user_id = ?", moodID, userID).
		Delete(&models.MoodEntry{})
	if result.Error != nil {
		log.Printf("DB Error deleting mood: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "Mood entry not found"})
	}
	return c.JSON(fiber.Map{"msg": "Mood entry deleted successfully"})
}
