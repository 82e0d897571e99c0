package api

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

const authRateWindow = time.Minute

// authLimiter caps requests per client IP on the /auth routes. A nil store
// keeps counters in process memory.
func authLimiter(limit int, store fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: authRateWindow,
		Storage:    store,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "rate_limited",
				Message: "Too many authentication attempts, try again later",
			})
		},
	})
}

// connectLimiterStore opens the Redis store shared by every API instance.
// redis.New panics when the server is unreachable.
func connectLimiterStore(addr, password string) (store *redis.Storage, err error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis port %q: %w", portStr, err)
	}

	defer func() {
		if r := recover(); r != nil {
			store, err = nil, fmt.Errorf("redis limiter store: %v", r)
		}
	}()

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		PoolSize: 10,
	}), nil
}
