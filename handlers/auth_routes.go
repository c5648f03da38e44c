// handlers/auth_routes.go
package handlers

import (
	"wellness-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, auth fiber.Handler) {
	group := app.Group("/api/auth")

	group.Post("/register", authService.Register)
	group.Post("/login", authService.Login)

	// 🔐 Authenticated profile routes
	group.Get("/me", auth, authService.Me)
	group.Post("/profile-picture", auth, authService.UploadProfilePicture)
}
