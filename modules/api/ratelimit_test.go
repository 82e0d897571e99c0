package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectLimiterStore_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"localhost", "localhost:port", ""} {
		store, err := connectLimiterStore(addr, "")
		assert.Error(t, err, addr)
		assert.Nil(t, store, addr)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8081")
	t.Setenv("API_AUTH_RATE_LIMIT", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := ConfigFromEnv()
	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)

	t.Setenv("API_AUTH_RATE_LIMIT", "zero")
	assert.Equal(t, defaultAuthRateLimit, ConfigFromEnv().AuthRateLimit)
}
