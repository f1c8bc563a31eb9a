package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev-secret-change-me"

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	JWTSecret       string
	JWTExpiry       time.Duration
	AllowedOrigins  []string
	MaintenanceCron string
	LogLevel        string
	Env             string
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from a .env file (if any) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "100h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return nil, errors.New("JWT_EXPIRY must be positive")
	}

	cfg := &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./devconnect.db"),
		JWTSecret:       getEnv("JWT_SECRET", devSecret),
		JWTExpiry:       expiry,
		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		MaintenanceCron: getEnv("MAINTENANCE_CRON", "0 3 * * *"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Env:             getEnv("APP_ENV", "development"),
	}

	if cfg.IsProduction() && cfg.JWTSecret == devSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
