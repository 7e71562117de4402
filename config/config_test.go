package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_PRETTY", "LISTINGS_PATH", "LISTINGS_REFRESH_SCHEDULE",
		"ASSUMPTIONS_FILE", "REDIS_ADDR", "CACHE_TTL", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_WINDOW",
		"OPENAI_API_KEY", "OPENAI_API_URL", "OPENAI_MODEL", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "data/listings.csv", cfg.ListingsPath)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimitCapacity)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.ListingsInSQLite())
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("LISTINGS_PATH", "data/listings.db")
	t.Setenv("LISTINGS_REFRESH_SCHEDULE", "@every 15m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.ListingsInSQLite())
	assert.Equal(t, "@every 15m", cfg.ListingsRefreshSchedule)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.RateLimitCapacity)
	assert.Equal(t, 10*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "not-a-port")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "70000"},
		{"RATE_LIMIT_CAPACITY", "0"},
		{"RATE_LIMIT_WINDOW", "-1s"},
		{"CACHE_TTL", "-5m"},
		{"LISTINGS_REFRESH_SCHEDULE", "every now and then"},
		{"LISTINGS_REFRESH_SCHEDULE", "0 0 * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestListingsInSQLite(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"data/listings.csv", false},
		{"data/listings.db", true},
		{"DATA/LISTINGS.SQLITE", true},
		{"file:listings?mode=memory", true},
	}
	for _, tt := range tests {
		cfg := &Config{ListingsPath: tt.path}
		assert.Equal(t, tt.want, cfg.ListingsInSQLite(), tt.path)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
