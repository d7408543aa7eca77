package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port          string
	LogLevel      string // debug, info, warn, error
	AllowedOrigin string

	// Demo store
	LoadDelay time.Duration
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:          getEnvOrDefault("AGUI_PORT", "8080"),
		LogLevel:      getEnvOrDefault("AGUI_LOG_LEVEL", "info"),
		AllowedOrigin: getEnvOrDefault("AGUI_ALLOWED_ORIGIN", "*"),
		LoadDelay:     getEnvDurationOrDefault("REDUCE_LOAD_DELAY", 500*time.Millisecond),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return fmt.Errorf("AGUI_PORT must be a port number, got %q", c.Port)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LoadDelay < 0 {
		return fmt.Errorf("REDUCE_LOAD_DELAY must not be negative")
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
