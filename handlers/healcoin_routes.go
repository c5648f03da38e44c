// handlers/healcoin_routes.go
package handlers

import (
	"wellness-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupHealCoinRoutes(app *fiber.App, rewardService *services.RewardService, auth fiber.Handler) {
	// 🔐 Every ledger operation requires an authenticated user
	group := app.Group("/api/healcoin", auth)

	group.Get("/balance", rewardService.GetBalance)
	group.Post("/earn", rewardService.Earn)
	group.Post("/redeem", rewardService.Redeem)
	group.Get("/history", rewardService.GetRedemptionHistory)
}
