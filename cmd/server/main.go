// Package main is the entry point for the CampWatch application.
// It initializes configuration, the database connection and migrations,
// builds the state-synchronization controller, runs the initial reload and
// starts the HTTP presentation boundary.
package main

import (
	"context"
	"log"

	"github.com/avissapr/campwatch/internal/config"
	"github.com/avissapr/campwatch/internal/database"
	"github.com/avissapr/campwatch/internal/handlers"
	"github.com/avissapr/campwatch/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load configuration (.env supported for local development)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database connection pool
	if err := database.Connect(nil); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Apply schema and seed migrations before anything reads the store
	if err := database.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire the controller to the HTTP adapter. The adapter is the
	// controller's publisher: every reload pushes fresh projections into it.
	srv := handlers.NewServer()
	ctl := services.NewController(srv, cfg.DisplayLocation)
	srv.SetController(ctl)

	// Initial full reload populates every derived cache from storage.
	// A failure here is fatal: there is nothing sensible to serve yet.
	if err := ctl.Reload(context.Background()); err != nil {
		log.Fatalf("Failed to load initial state: %v", err)
	}

	app := fiber.New()

	// Panic recovery (should be first)
	app.Use(recover.New())

	srv.Register(app)

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("🏕️  CampWatch server starting on http://%s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
