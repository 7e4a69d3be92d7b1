package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/redhat-data-and-ai/timekeeper/internal/config"
	"github.com/redhat-data-and-ai/timekeeper/internal/webhook"
)

func main() {
	// Load .env if present, real environment takes precedence
	_ = godotenv.Load()

	cfg := config.Load()

	if !cfg.HasSlackToken() {
		log.Printf("⚠️  Warning: SLACK_BOT_TOKEN not set - reviewer notifications will be skipped")
	}
	if !cfg.HasRepliconToken() {
		log.Printf("⚠️  Warning: REPLICON_TOKEN not set - time logging will fail")
	}

	// Create handlers
	webhookHandler := webhook.NewWebhookHandler(cfg)
	healthHandler := webhook.NewHealthHandler(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName: "TIMEKEEPER MR Bot",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(500).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	// Basic middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	app.Get("/health", healthHandler.HandleHealth)
	app.Get("/readyz", healthHandler.HandleReady)
	app.Post("/webhook/gitlab", webhookHandler.HandleWebhook)

	log.Printf("🚀 TIMEKEEPER MR Bot starting on port %s", cfg.Server.Port)
	log.Printf("💬 Notification mode: %s", cfg.NotificationMode())
	log.Printf("🕐 Timesheet mode: %s", cfg.TimesheetMode())
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
