// handlers/dashboard_routes.go
package handlers

import (
	"wellness-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, dashboardService *services.DashboardService, leaderboardService *services.LeaderboardService, auth fiber.Handler) {
	app.Get("/api/dashboard/user", auth, dashboardService.GetUserDashboard)

	// Leaderboard is served from the periodic snapshot
	app.Get("/api/leaderboard", auth, leaderboardService.GetLeaderboard)
}
