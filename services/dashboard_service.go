// services/dashboard_service.go
package services

import (
	"log"

	"wellness-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardService struct {
	DB      *gorm.DB
	Rewards *RewardService
}

func NewDashboardService(db *gorm.DB, rewards *RewardService) *DashboardService {
	return &DashboardService{DB: db, Rewards: rewards}
}

// GetUserDashboard aggregates mood stats, completed missions and the HealCoin
// balance into the mobile home-screen payload.
func (s *DashboardService) GetUserDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var moodStats []moodStat
	if err := s.DB.Model(&models.MoodEntry{}).
		Select("mood, emoji, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("mood, emoji").
		Order("count DESC").
		Scan(&moodStats).Error; err != nil {
		log.Printf("DB Error fetching dashboard mood stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	var missionsCompleted int64
	if err := s.DB.Model(&models.Mission{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&missionsCompleted).Error; err != nil {
		log.Printf("DB Error counting completed missions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	ledger, err := s.Rewards.ensureLedger(s.DB, userID)
	if err != nil {
		log.Printf("DB Error fetching ledger for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.JSON(fiber.Map{
		"moodStats":         moodStats,
		"missionsCompleted": missionsCompleted,
		"healCoinBalance":   ledger.Balance,
		"streak":            ledger.Streak,
		"xp":                ledger.XP,
	})
}
