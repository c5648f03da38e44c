// handlers/mission_routes.go
package handlers

import (
	"wellness-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMissionRoutes(app *fiber.App, missionService *services.MissionService, auth fiber.Handler) {
	group := app.Group("/api/mission", auth)

	group.Post("/", missionService.CreateMission)
	group.Get("/", missionService.GetMissions)
	group.Post("/complete", missionService.CompleteMission)
}
