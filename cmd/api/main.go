package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"cvcoach/api/internal/config"
	"cvcoach/api/internal/handlers"
	"cvcoach/api/internal/repositories"
	"cvcoach/api/internal/services"
)

func main() {
	// Load and validate configuration once; everything downstream receives
	// values instead of reading the environment.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Entitlement store backend
	var entitlementRepo repositories.EntitlementRepository
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		entitlementRepo = repositories.NewPostgresRepository(db)
	default:
		entitlementRepo = repositories.NewAirtableRepository(
			cfg.Store.Airtable.BaseURL,
			cfg.Store.Airtable.BaseID,
			cfg.Store.Airtable.Table,
			cfg.Store.Airtable.APIKey,
		)
	}
	log.Printf("✅ Entitlement store initialized (%s)", cfg.Store.Backend)

	// Scoring pipeline
	promptBuilder := services.NewPromptBuilder(cfg.OpenAI.Model, cfg.OpenAI.Temperature)
	openAIService := services.NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	scorerService := services.NewScorerService(promptBuilder, openAIService)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	premiumHandler := handlers.NewPremiumHandler(entitlementRepo)
	scoreHandler := handlers.NewScoreHandler(scorerService)
	webhookHandler := handlers.NewWebhookHandler(cfg, entitlementRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Coach Premium API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	app.Get("/premium-status", premiumHandler.HandlePremiumStatus)
	app.Post("/score", scoreHandler.HandleScore)
	app.Post("/payment-webhook", webhookHandler.HandleWebhook)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Coach Premium API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /premium-status",
				"POST /score",
				"POST /payment-webhook",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
