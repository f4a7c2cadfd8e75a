// Package config loads application configuration from environment variables,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the application.
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DatabaseURL string

	// DisplayLocation is the timezone used when grouping the presence log
	// for display. Timestamps are stored in UTC and converted only at
	// aggregation time.
	DisplayLocation *time.Location
}

// Load reads configuration from the environment.
// A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	// Load .env file if it exists; missing file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Host:        getEnv("HOST", "127.0.0.1"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	tz := getEnv("DISPLAY_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
	}
	cfg.DisplayLocation = loc

	return cfg, nil
}

// getEnv returns the environment variable value or a default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
