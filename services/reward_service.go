// services/reward_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"wellness-reward-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

var (
	errLedgerConflict      = errors.New("ledger version conflict")
	errInsufficientBalance = errors.New("insufficient HealCoins")
)

// maxAccrualAttempts bounds the optimistic retry loop when concurrent accruals
// for the same user race on the ledger version.
const maxAccrualAttempts = 5

type RewardService struct {
	DB    *gorm.DB
	Clock clockwork.Clock
}

func NewRewardService(db *gorm.DB, clock clockwork.Clock) *RewardService {
	return &RewardService{DB: db, Clock: clock}
}

// ensureLedger finds or lazily creates the user's ledger (idempotent).
// A create that loses a race with a concurrent request falls back to the row
// the winner inserted.
func (s *RewardService) ensureLedger(db *gorm.DB, userID string) (*models.HealCoinLedger, error) {
	var ledger models.HealCoinLedger
	err := db.Where("user_id = ?", userID).First(&ledger).Error
	if err == nil {
		return &ledger, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ledger = models.HealCoinLedger{
		ID:           uuid.NewString(),
		UserID:       userID,
		Badges:       models.BadgeList{},
		LastActivity: truncateToDay(s.Clock.Now()),
	}
	if createErr := db.Create(&ledger).Error; createErr != nil {
		var existing models.HealCoinLedger
		if ferr := db.Where("user_id = ?", userID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &ledger, nil
}

// accrueOnce applies one earn event guarded by the ledger version: the update
// only lands if no other writer advanced the row since we read it.
func (s *RewardService) accrueOnce(db *gorm.DB, userID string, coins int64, kind AccrualKind) (*AccrualResult, error) {
	ledger, err := s.ensureLedger(db, userID)
	if err != nil {
		return nil, err
	}

	next := *ledger
	next.Badges = append(models.BadgeList{}, ledger.Badges...)
	res := applyEarn(&next, coins, kind, s.Clock.Now())

	update := db.Model(&models.HealCoinLedger{}).
		Where("id = ? AND version = ?", ledger.ID, ledger.Version).
		Updates(map[string]interface{}{
			"balance":       next.Balance,
			"xp":            next.XP,
			"streak":        next.Streak,
			"last_activity": next.LastActivity,
			"badges":        next.Badges,
			"version":       ledger.Version + 1,
		})
	if update.Error != nil {
		return nil, update.Error
	}
	if update.RowsAffected == 0 {
		return nil, errLedgerConflict
	}
	return &res, nil
}

// accrue is the single entry point for every earning trigger (generic earn,
// mood log, mission completion). Retries on version conflicts so concurrent
// triggers for the same user never lose an update.
func (s *RewardService) accrue(db *gorm.DB, userID string, coins int64, kind AccrualKind) (*AccrualResult, error) {
	for attempt := 0; attempt < maxAccrualAttempts; attempt++ {
		res, err := s.accrueOnce(db, userID, coins, kind)
		if errors.Is(err, errLedgerConflict) {
			continue
		}
		return res, err
	}
	return nil, errLedgerConflict
}

// redeem debits the balance and appends to the redemption history in one
// transaction. The debit is a single conditional update so two concurrent
// redemptions can't both pass the balance check.
func (s *RewardService) redeem(userID, item string, amount int64) (int64, error) {
	var newBalance int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		debit := tx.Model(&models.HealCoinLedger{}).
			Where("user_id = ? AND balance >= ?", userID, amount).
			Updates(map[string]interface{}{
				"balance": gorm.Expr("balance - ?", amount),
				"version": gorm.Expr("version + 1"),
			})
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			// no ledger or not enough coins, same rejection either way
			return errInsufficientBalance
		}

		entry := models.RedemptionEntry{
			ID:     uuid.NewString(),
			UserID: userID,
			Item:   item,
			Amount: amount,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var ledger models.HealCoinLedger
		if err := tx.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
			return err
		}
		newBalance = ledger.Balance
		return nil
	})
	return newBalance, err
}

// --- Handlers ---

// GetBalance returns HealCoin balance and stats, creating the ledger lazily.
func (s *RewardService) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	ledger, err := s.ensureLedger(s.DB, userID)
	if err != nil {
		log.Printf("DB Error fetching balance for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	badges := ledger.Badges
	if badges == nil {
		badges = models.BadgeList{}
	}
	return c.JSON(fiber.Map{
		"healCoins": ledger.Balance,
		"xp":        ledger.XP,
		"badges":    badges,
		"streak":    ledger.Streak,
		"msg":       "HealCoin stats retrieved",
	})
}

// Earn grants the fixed generic reward (10 HealCoins, 50 XP) and updates
// streak and badges.
func (s *RewardService) Earn(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := s.accrue(s.DB, userID, EarnCoins, AccrualKindEarn)
	if err != nil {
		log.Printf("Error earning rewards for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.JSON(fiber.Map{
		"healCoinsEarned": res.CoinsEarned,
		"xpEarned":        res.XPEarned,
		"newBalance":      res.NewBalance,
		"streak":          res.Streak,
		"badges":          res.Badges,
		"msg":             "Rewards earned successfully",
	})
}

// Redeem spends HealCoins on an item. Rejected outright (not clamped) when the
// balance doesn't cover the amount.
func (s *RewardService) Redeem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Item   string `json:"item"`
		Amount int64  `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Invalid request body"})
	}
	if req.Item == "" || req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Item and a positive amount are required"})
	}

	newBalance, err := s.redeem(userID, req.Item, req.Amount)
	if err != nil {
		if errors.Is(err, errInsufficientBalance) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Insufficient HealCoins"})
		}
		log.Printf("Error redeeming HealCoins for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}

	return c.JSON(fiber.Map{
		"newBalance": newBalance,
		"msg":        fmt.Sprintf("Redeemed %d HealCoins for %s", req.Amount, req.Item),
	})
}

// GetRedemptionHistory lists the user's redemptions, newest first.
func (s *RewardService) GetRedemptionHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var entries []models.RedemptionEntry
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		log.Printf("DB Error fetching redemption history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
	return c.JSON(entries)
}
