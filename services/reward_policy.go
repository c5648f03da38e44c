// services/reward_policy.go
package services

import (
	"time"

	"wellness-reward-system/models"
)

// Reward policy constants. XP is derived from the coin amount at the moment of
// accrual (never recomputed from balance later).
const (
	EarnCoins        = 10 // fixed payout for generic earn actions and mood logs
	XPPerCoin        = 5
	StreakBadgeEvery = 7 // a badge unlocks whenever streak hits a multiple of 7
)

const (
	BadgeStreakMaster  = "StreakMaster"
	BadgeMissionMaster = "MissionMaster"
)

// AccrualKind identifies which trigger fed the reward engine. Each kind has
// its own streak badge; a user can hold both.
type AccrualKind string

const (
	AccrualKindEarn    AccrualKind = "earn"
	AccrualKindMission AccrualKind = "mission"
)

func (k AccrualKind) Badge() string {
	if k == AccrualKindMission {
		return BadgeMissionMaster
	}
	return BadgeStreakMaster
}

// AccrualResult summarizes a single accrual event for API responses.
type AccrualResult struct {
	CoinsEarned int64            `json:"healCoinsEarned"`
	XPEarned    int64            `json:"xpEarned"`
	NewBalance  int64            `json:"newBalance"`
	Streak      int              `json:"streak"`
	Badges      models.BadgeList `json:"badges"`
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// applyEarn advances a ledger by one accrual event. Pure with respect to its
// inputs: persistence and per-user serialization happen around it.
//
// Streak rule: the day comparison uses the pre-update LastActivity, then
// LastActivity is overwritten with today. In that order, once per event.
// A repeat accrual on the same calendar day extends the streak; activity on
// any other day resets it to 1 (never 0).
func applyEarn(ledger *models.HealCoinLedger, coins int64, kind AccrualKind, now time.Time) AccrualResult {
	today := truncateToDay(now)

	ledger.Balance += coins
	ledger.XP += coins * XPPerCoin

	if sameDay(ledger.LastActivity, today) {
		ledger.Streak++
	} else {
		ledger.Streak = 1
	}
	ledger.LastActivity = today

	badge := kind.Badge()
	if ledger.Streak%StreakBadgeEvery == 0 && !ledger.Badges.Has(badge) {
		ledger.Badges = append(ledger.Badges, badge)
	}

	return AccrualResult{
		CoinsEarned: coins,
		XPEarned:    coins * XPPerCoin,
		NewBalance:  ledger.Balance,
		Streak:      ledger.Streak,
		Badges:      append(models.BadgeList{}, ledger.Badges...),
	}
}
