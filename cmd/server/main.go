package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LEGENDANISH/UMS/internal/adapters/http/middleware"
	"github.com/LEGENDANISH/UMS/internal/adapters/http/routes"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/repositories"
	"github.com/LEGENDANISH/UMS/internal/config"
	"github.com/LEGENDANISH/UMS/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/LEGENDANISH/UMS/docs" // Swagger docs
)

// @title UMS API
// @version 1.0
// @description University Management System API

// @contact.name API Support
// @contact.email support@ums.com

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed master data
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Cron service: overdue borrow sweep + fee reminders
	libraryRepo := repositories.NewLibraryRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	userRepo := repositories.NewUserRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)

	cronService := services.NewCronService(libraryRepo, feeRepo, notificationService)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "UMS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
