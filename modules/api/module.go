package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/Dimaschel/FullStack/modules/auth"
	"github.com/Dimaschel/FullStack/modules/profile"
	"github.com/Dimaschel/FullStack/modules/schedule"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
)

const (
	defaultAddr          = ":3000"
	defaultAuthRateLimit = 20
)

// Config holds the HTTP server settings.
type Config struct {
	Addr          string
	AuthRateLimit int
	// RedisAddr enables a shared limiter store when set.
	RedisAddr     string
	RedisPassword string
}

// ConfigFromEnv reads HTTP_ADDR, API_AUTH_RATE_LIMIT, REDIS_ADDR and
// REDIS_PASSWORD.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:          defaultAddr,
		AuthRateLimit: defaultAuthRateLimit,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if v := os.Getenv("API_AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AuthRateLimit = n
		} else {
			log.Printf("[api] Ignoring invalid API_AUTH_RATE_LIMIT=%q", v)
		}
	}
	return cfg
}

// APIModule is the HTTP API module.
type APIModule struct {
	app       *fiber.App
	cfg       Config
	store     *redis.Storage
	auth      auth.AuthPort
	schedules schedule.SchedulePort
	profiles  profile.ProfilePort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	return &APIModule{cfg: ConfigFromEnv()}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "profile", "schedule"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.auth = auth.NewAuthAdapter(container)
	case "profile":
		m.profiles = profile.NewProfileAdapter(container)
	case "schedule":
		m.schedules = schedule.NewScheduleAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	switch {
	case m.auth == nil:
		return fmt.Errorf("auth dependency not set")
	case m.profiles == nil:
		return fmt.Errorf("profile dependency not set")
	case m.schedules == nil:
		return fmt.Errorf("schedule dependency not set")
	}

	var store fiber.Storage
	if m.cfg.RedisAddr != "" {
		s, err := connectLimiterStore(m.cfg.RedisAddr, m.cfg.RedisPassword)
		if err != nil {
			log.Printf("[api] Warning: auth rate limit kept in memory: %v", err)
		} else {
			m.store, store = s, s
			log.Printf("[api] Auth rate limit counters stored in Redis at %s", m.cfg.RedisAddr)
		}
	}

	m.app = newApp(NewHandlers(m.auth, m.schedules, m.profiles), m.auth, m.cfg, store)

	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.cfg.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	err := m.app.Shutdown()
	if m.store != nil {
		if cerr := m.store.Close(); cerr != nil {
			log.Printf("[api] Error closing limiter store: %v", cerr)
		}
	}
	return err
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr":            m.cfg.Addr,
			"auth_rate_limit": m.cfg.AuthRateLimit,
			"limiter_store":   limiterStoreName(m.store),
		},
	}
}

func limiterStoreName(s *redis.Storage) string {
	if s == nil {
		return "memory"
	}
	return "redis"
}

// newApp builds the Fiber application with middleware and routes.
func newApp(h *Handlers, validator tokenValidator, cfg Config, store fiber.Storage) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	authRoutes := app.Group("/auth", authLimiter(cfg.AuthRateLimit, store))
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)
	authRoutes.Post("/refresh", h.Refresh)

	protected := app.Group("", AuthMiddleware(validator))
	protected.Get("/me", h.Me)

	schedules := protected.Group("/schedules")
	schedules.Get("/", h.ListSchedules)
	schedules.Get("/:id", h.GetSchedule)
	schedules.Post("/", RequireRole(user.RoleNeedy), h.CreateSchedule)
	schedules.Patch("/:id/date", RequireRole(user.RoleNeedy), h.Reschedule)
	schedules.Delete("/:id", RequireRole(user.RoleNeedy), h.DeleteSchedule)
	schedules.Patch("/:id/rating", RequireRole(user.RoleNeedy), h.RateSchedule)
	schedules.Patch("/:id/status", RequireRole(user.RoleNeedy, user.RoleAdmin), h.SetScheduleStatus)
	schedules.Patch("/:id/claim", RequireRole(user.RoleHelper), h.ClaimSchedule)
	schedules.Patch("/:id/release", RequireRole(user.RoleHelper), h.ReleaseSchedule)

	profiles := protected.Group("/profiles")
	profiles.Post("/", h.CreateProfile)
	profiles.Get("/", h.ListProfiles)
	profiles.Get("/:userId", h.GetProfile)

	users := protected.Group("/users", RequireRole(user.RoleAdmin))
	users.Get("/:id", h.GetUser)
	users.Delete("/:id", h.DeleteUser)

	return app
}
