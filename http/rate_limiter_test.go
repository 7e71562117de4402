package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	allowed, remaining, _ := rl.Allow("a")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining, _ = rl.Allow("a")
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	now = now.Add(20 * time.Second)
	allowed, _, retryAfter := rl.Allow("a")
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, retryAfter)

	allowed, _, _ = rl.Allow("b")
	assert.True(t, allowed, "clients have separate buckets")

	now = now.Add(40 * time.Second)
	allowed, remaining, _ = rl.Allow("a")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(2 * time.Hour)
	rl.cleanup()

	assert.Empty(t, rl.clients)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	srv := newTestServer(t, rl)
	body := []byte(`{"initial_rent": 1000, "initial_price": 100000}`)

	first := srv.do(http.MethodPost, "/api/projections", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := srv.do(http.MethodPost, "/api/projections", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	// Listing reads are not rate limited
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/listings", nil).Code)
}
