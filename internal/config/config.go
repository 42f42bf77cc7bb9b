// Package config manages application configuration
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host        string
	Port        string
	Environment string // "development" or "production"

	// Database
	DatabasePath string

	// Persistence
	SaveDelay time.Duration // quiet period before a snapshot write

	// Pacing policy
	TargetScore int // score the cooldown decays toward

	// Presets
	PresetsPath string // optional YAML catalog override
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Host:         getEnv("NOMEL_HOST", "127.0.0.1"),
		Port:         getEnv("NOMEL_PORT", "8080"),
		Environment:  getEnv("NOMEL_ENV", "development"),
		DatabasePath: getEnv("NOMEL_DATABASE_PATH", "nomel.db"),
		SaveDelay:    getDurationEnv("NOMEL_SAVE_DELAY", 200*time.Millisecond),
		TargetScore:  getIntEnv("NOMEL_TARGET_SCORE", 25),
		PresetsPath:  getEnv("NOMEL_PRESETS", ""),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
