// services/leaderboard_service.go
package services

import (
	"log"
	"time"

	"wellness-reward-system/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// leaderboardSize caps how many users the snapshot holds.
const leaderboardSize = 50

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

type leaderboardRow struct {
	UserID   string
	UserName string
	Balance  int64
	XP       int64
}

// RefreshSnapshot rebuilds the leaderboard table from the current ledgers.
func (s *LeaderboardService) RefreshSnapshot() error {
	var rows []leaderboardRow
	if err := s.DB.Raw(`
		SELECT l.user_id AS user_id,
		       COALESCE(NULLIF(u.name, ''), u.email) AS user_name,
		       l.balance AS balance,
		       l.xp AS xp
		FROM heal_coin_ledgers l
		INNER JOIN users u ON u.id = l.user_id
		WHERE u.deleted_at IS NULL
		ORDER BY l.balance DESC, l.xp DESC
		LIMIT ?
	`, leaderboardSize).Scan(&rows).Error; err != nil {
		return err
	}

	now := time.Now()
	entries := make([]models.LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = models.LeaderboardEntry{
			ID:         uuid.NewString(),
			Rank:       i + 1,
			UserID:     r.UserID,
			UserName:   r.UserName,
			HealCoins:  r.Balance,
			XP:         r.XP,
			SnapshotAt: now,
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// GetLeaderboard serves the latest snapshot, building one on demand if the
// table is still empty (fresh deploy).
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	var entries []models.LeaderboardEntry
	if err := s.DB.Order("rank ASC").Find(&entries).Error; err != nil {
		log.Printf("DB Error fetching leaderboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	if len(entries) == 0 {
		if err := s.RefreshSnapshot(); err != nil {
			log.Printf("Error building leaderboard snapshot: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
		}
		if err := s.DB.Order("rank ASC").Find(&entries).Error; err != nil {
			log.Printf("DB Error fetching leaderboard: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
		}
	}

	response := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		response = append(response, fiber.Map{
			"rank":      e.Rank,
			"userName":  e.UserName,
			"healCoins": e.HealCoins,
			"xp":        e.XP,
		})
	}
	return c.JSON(response)
}

// StartSnapshotScheduler refreshes the leaderboard every minute.
func (s *LeaderboardService) StartSnapshotScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.RefreshSnapshot(); err != nil {
				log.Printf("[Scheduler] Leaderboard refresh failed: %v", err)
			}
		}),
	)
}
