package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisCache_Unreachable(t *testing.T) {
	cache := NewRedisCache("127.0.0.1:1", "test:")
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, cache.Ping(ctx))

	_, ok, err := cache.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
}
