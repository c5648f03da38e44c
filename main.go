package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wellness-reward-system/handlers"
	"wellness-reward-system/middleware"
	"wellness-reward-system/models"
	"wellness-reward-system/services"
	"wellness-reward-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, profile pictures are the largest upload
	})

	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	storageEnabled, err := utils.InitObjectStorage()
	if err != nil {
		log.Fatal("failed to initialize object storage client:", err)
	}
	if !storageEnabled {
		log.Println("⚠️  Object storage credentials not set, profile picture uploads disabled")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.HealCoinLedger{},
		&models.RedemptionEntry{},
		&models.MoodEntry{},
		&models.Mission{},
		&models.LeaderboardEntry{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	rewardService := services.NewRewardService(db, clockwork.NewRealClock())
	moodService := services.NewMoodService(db, rewardService)
	missionService := services.NewMissionService(db, rewardService)
	authService := services.NewAuthService(db, []byte(jwtSecret))
	leaderboardService := services.NewLeaderboardService(db)
	dashboardService := services.NewDashboardService(db, rewardService)

	auth := middleware.JWTAuthMiddleware([]byte(jwtSecret))

	handlers.SetupAuthRoutes(app, authService, auth)
	handlers.SetupHealCoinRoutes(app, rewardService, auth)
	handlers.SetupMoodRoutes(app, moodService, auth)
	handlers.SetupMissionRoutes(app, missionService, auth)
	handlers.SetupDashboardRoutes(app, dashboardService, leaderboardService, auth)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Wellness Reward Backend")
	})

	leaderboardService.StartSnapshotScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Leaderboard snapshot scheduler running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
