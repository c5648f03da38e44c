// handlers/mood_routes.go
package handlers

import (
	"wellness-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMoodRoutes(app *fiber.App, moodService *services.MoodService, auth fiber.Handler) {
	group := app.Group("/api/mood", auth)

	group.Post("/", moodService.LogMood)
	group.Get("/", moodService.GetMoods)
	group.Get("/stats", moodService.GetMoodStats)
	group.Delete("/:id", moodService.DeleteMood)
}
