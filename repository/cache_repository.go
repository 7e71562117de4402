package repository

import (
	"context"
	"time"
)

// CacheRepository stores opaque values under string keys. A miss is reported
// with ok == false and a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
