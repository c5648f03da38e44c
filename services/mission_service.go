// services/mission_service.go
package services

import (
	"errors"
	"log"

	"wellness-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var errMissionNotCompletable = errors.New("mission not found or already completed")

type MissionService struct {
	DB      *gorm.DB
	Rewards *RewardService
}

func NewMissionService(db *gorm.DB, rewards *RewardService) *MissionService {
	return &MissionService{DB: db, Rewards: rewards}
}

// CreateMission creates a mission for the authenticated user.
func (s *MissionService) CreateMission(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Title       string                   `json:"title"`
		Description string                   `json:"description"`
		Target      string                   `json:"target"`
		Current     string                   `json:"current"`
		Category    models.MissionCategory   `json:"category"`
		Difficulty  models.MissionDifficulty `json:"difficulty"`
		Tasks       models.MissionTaskList   `json:"tasks"`
		Reward      int64                    `json:"reward"`
		TimeLeft    string                   `json:"time_left"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid request body"})
	}

	if req.Title == "" || req.Description == "" || req.Target == "" || req.TimeLeft == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "title, description, target and time_left are required"})
	}
	if !req.Category.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid category. Must be one of: Saving, Budgeting, Debt Payoff"})
	}
	if !req.Difficulty.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid difficulty. Must be one of: Beginner, Intermediate, Advanced"})
	}
	if req.Reward <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "reward must be a positive HealCoin amount"})
	}

	current := req.Current
	if current == "" {
		current = "0"
	}

	mission := models.Mission{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Target:      req.Target,
		Current:     current,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Tasks:       req.Tasks,
		Reward:      req.Reward,
		TimeLeft:    req.TimeLeft,
	}
	if err := s.DB.Create(&mission).Error; err != nil {
		log.Printf("DB Error creating mission: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(mission)
}

// GetMissions lists the user's missions, newest first.
func (s *MissionService) GetMissions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var missions []models.Mission
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&missions).Error; err != nil {
		log.Printf("DB Error fetching missions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	return c.JSON(missions)
}

// completeMission flips completed from false to true and pays the reward in one
// transaction. The flip is a compare-and-swap: the conditional update only
// matches a row that is still incomplete and owned by the caller, so a
// concurrent duplicate request cannot double-pay.
func (s *MissionService) completeMission(userID, missionID string) (*AccrualResult, error) {
	var result *AccrualResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Where("id = ? AND user_id = ?", missionID, userID).
			First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errMissionNotCompletable
			}
			return err
		}

		cas := tx.Model(&models.Mission{}).
			Where("id = ? AND user_id = ? AND completed = ?", missionID, userID, false).
			Updates(map[string]interface{}{
				"completed": true,
				"progress":  100,
			})
		if cas.Error != nil {
			return cas.Error
		}
		if cas.RowsAffected == 0 {
			return errMissionNotCompletable
		}

		res, err := s.Rewards.accrue(tx, userID, mission.Reward, AccrualKindMission)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteMission handles POST /api/mission/complete.
func (s *MissionService) CompleteMission(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		MissionID string `json:"missionId"`
	}
	if err := c.BodyParser(&req); err != nil || req.MissionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "missionId is required"})
	}

	res, err := s.completeMission(userID, req.MissionID)
	if err != nil {
		if errors.Is(err, errMissionNotCompletable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Mission not found or already completed"})
		}
		log.Printf("Error completing mission %s: %v", req.MissionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.JSON(fiber.Map{
		"msg": "Mission completed",
		"reward": fiber.Map{
			"healCoins": res.CoinsEarned,
			"xp":        res.XPEarned,
			"badges":    res.Badges,
			"streak":    res.Streak,
		},
	})
}
