package http

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"deal-underwriter/repository"
)

// responseCache memoizes computed responses keyed by a hash of the request.
// Cache errors are logged and treated as misses.
type responseCache struct {
	store repository.CacheRepository
	ttl   time.Duration
	log   zerolog.Logger
}

func newResponseCache(store repository.CacheRepository, ttl time.Duration, log zerolog.Logger) *responseCache {
	return &responseCache{
		store: store,
		ttl:   ttl,
		log:   log.With().Str("component", "response_cache").Logger(),
	}
}

// cacheKey hashes the msgpack encoding of request, which is stable for a
// given struct value.
func cacheKey(kind string, request any) (string, error) {
	data, err := msgpack.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", kind, xxhash.Sum64(data)), nil
}

func (c *responseCache) load(ctx context.Context, key string, out any) bool {
	if c == nil || c.store == nil || key == "" {
		return false
	}

	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache get failed")
		return false
	}
	if !ok {
		return false
	}

	if err := msgpack.Unmarshal(data, out); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return false
	}
	return true
}

func (c *responseCache) save(ctx context.Context, key string, v any) {
	if c == nil || c.store == nil || key == "" {
		return
	}

	data, err := msgpack.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache set failed")
	}
}
