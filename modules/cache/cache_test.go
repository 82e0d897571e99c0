package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires Redis on localhost:6379; skipped otherwise.
const testRedisAddr = "localhost:6379"

func setupTestCache(t *testing.T, prefix string) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	c := New(client, prefix, time.Minute)
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return c
}

func TestCache_SetGetDelete(t *testing.T) {
	c := setupTestCache(t, "test:setget:")
	ctx := context.Background()

	var got string
	found, err := c.Get(ctx, "user-1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "user-1", "alice@example.com"))

	found, err = c.Get(ctx, "user-1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice@example.com", got)

	require.NoError(t, c.Delete(ctx, "user-1"))
	found, err = c.Get(ctx, "user-1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(2), s.Misses)
	assert.Equal(t, uint64(1), s.Sets)
	assert.Equal(t, uint64(1), s.Deletes)
}

func TestCache_Expiry(t *testing.T) {
	c := setupTestCache(t, "test:ttl:")
	ctx := context.Background()

	require.NoError(t, c.SetWithTTL(ctx, "k", 42, 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)

	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	_, ok := ConfigFromEnv()
	assert.False(t, ok)

	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CACHE_TTL", "30s")
	cfg, ok := ConfigFromEnv()
	require.True(t, ok)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.TTL)

	t.Setenv("CACHE_TTL", "garbage")
	cfg, _ = ConfigFromEnv()
	assert.Equal(t, 5*time.Minute, cfg.TTL)
}
