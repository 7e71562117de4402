// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool

	ListingsPath            string // .db/.sqlite selects SQLite, anything else is read as CSV
	ListingsRefreshSchedule string // cron spec; empty disables refresh
	AssumptionsFile         string

	RedisAddr string // empty selects the in-memory cache
	CacheTTL  time.Duration

	RateLimitCapacity int
	RateLimitWindow   time.Duration

	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, after loading a .env
// file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnvAsInt("PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		ListingsPath:            getEnv("LISTINGS_PATH", "data/listings.csv"),
		ListingsRefreshSchedule: getEnv("LISTINGS_REFRESH_SCHEDULE", ""),
		AssumptionsFile:         getEnv("ASSUMPTIONS_FILE", ""),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  getEnvAsDuration("CACHE_TTL", 10*time.Minute),

		RateLimitCapacity: getEnvAsInt("RATE_LIMIT_CAPACITY", 30),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIAPIURL: getEnv("OPENAI_API_URL", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", ""),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.ListingsPath == "" {
		return errors.New("LISTINGS_PATH must not be empty")
	}
	if c.RateLimitCapacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", c.RateLimitCapacity)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if c.ListingsRefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.ListingsRefreshSchedule); err != nil {
			return fmt.Errorf("invalid LISTINGS_REFRESH_SCHEDULE %q: %w", c.ListingsRefreshSchedule, err)
		}
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// ListingsInSQLite reports whether ListingsPath names a SQLite database.
func (c *Config) ListingsInSQLite() bool {
	p := strings.ToLower(c.ListingsPath)
	return strings.HasSuffix(p, ".db") || strings.HasSuffix(p, ".sqlite") || strings.HasPrefix(p, "file:")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
