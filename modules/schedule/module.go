package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/Dimaschel/FullStack/events"
	"github.com/Dimaschel/FullStack/modules/auth"
	"github.com/Dimaschel/FullStack/modules/cache"
	"github.com/Dimaschel/FullStack/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// ScheduleModule owns the schedule lifecycle (core domain).
type ScheduleModule struct {
	db       *gorm.DB
	engine   *Engine
	cache    *cache.Cache
	authPort auth.AuthPort
	eventBus mono.EventBus
	dbCfg    storage.Config
	policy   domain.Policy
}

var _ mono.Module = (*ScheduleModule)(nil)
var _ mono.ServiceProviderModule = (*ScheduleModule)(nil)
var _ mono.DependentModule = (*ScheduleModule)(nil)
var _ mono.EventEmitterModule = (*ScheduleModule)(nil)
var _ mono.HealthCheckableModule = (*ScheduleModule)(nil)

// NewModule creates a ScheduleModule configured from SCHEDULE_* variables.
func NewModule() *ScheduleModule {
	return &ScheduleModule{
		dbCfg:  storage.ConfigFromEnv("SCHEDULE", "schedules.db"),
		policy: PolicyFromEnv(),
	}
}

// PolicyFromEnv reads the optional lifecycle restrictions. Unset or
// unparsable values leave a rule off.
func PolicyFromEnv() domain.Policy {
	return domain.Policy{
		OwnerOnlyRating:  envBool("SCHEDULE_OWNER_ONLY_RATING"),
		RateOnce:         envBool("SCHEDULE_RATE_ONCE"),
		ProtectCompleted: envBool("SCHEDULE_PROTECT_COMPLETED"),
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func (m *ScheduleModule) Name() string {
	return "schedule"
}

func (m *ScheduleModule) Dependencies() []string {
	return []string{"auth"}
}

func (m *ScheduleModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.authPort = auth.NewAuthAdapter(container)
	}
}

func (m *ScheduleModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *ScheduleModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ScheduleCreatedV1.ToBase(),
		events.ScheduleRescheduledV1.ToBase(),
		events.ScheduleClaimedV1.ToBase(),
		events.ScheduleReleasedV1.ToBase(),
		events.ScheduleStatusChangedV1.ToBase(),
		events.ScheduleRatedV1.ToBase(),
		events.ScheduleDeletedV1.ToBase(),
	}
}

func (m *ScheduleModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-schedule", json.Unmarshal, json.Marshal, m.createSchedule,
	); err != nil {
		return fmt.Errorf("failed to register create-schedule service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-schedule", json.Unmarshal, json.Marshal, m.getSchedule,
	); err != nil {
		return fmt.Errorf("failed to register get-schedule service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-schedules", json.Unmarshal, json.Marshal, m.listSchedules,
	); err != nil {
		return fmt.Errorf("failed to register list-schedules service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "reschedule", json.Unmarshal, json.Marshal, m.reschedule,
	); err != nil {
		return fmt.Errorf("failed to register reschedule service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-schedule", json.Unmarshal, json.Marshal, m.deleteSchedule,
	); err != nil {
		return fmt.Errorf("failed to register delete-schedule service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "rate-schedule", json.Unmarshal, json.Marshal, m.rateSchedule,
	); err != nil {
		return fmt.Errorf("failed to register rate-schedule service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-schedule-status", json.Unmarshal, json.Marshal, m.setScheduleStatus,
	); err != nil {
		return fmt.Errorf("failed to register set-schedule-status service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "claim-schedule", json.Unmarshal, json.Marshal, m.claimSchedule,
	); err != nil {
		return fmt.Errorf("failed to register claim-schedule service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "release-schedule", json.Unmarshal, json.Marshal, m.releaseSchedule,
	); err != nil {
		return fmt.Errorf("failed to register release-schedule service: %w", err)
	}

	log.Printf("[schedule] Registered services: create-schedule, get-schedule, list-schedules, reschedule, " +
		"delete-schedule, rate-schedule, set-schedule-status, claim-schedule, release-schedule")
	return nil
}

func (m *ScheduleModule) Start(ctx context.Context) error {
	if m.authPort == nil {
		return fmt.Errorf("authPort dependency not set")
	}

	db, err := storage.Open(m.dbCfg, &domain.Schedule{})
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	m.db = db

	directory := NewAuthDirectory(m.authPort)
	if cfg, ok := cache.ConfigFromEnv(); ok {
		c, err := cache.Connect(ctx, cfg)
		if err != nil {
			log.Printf("[schedule] Warning: display name cache disabled: %v", err)
		} else {
			m.cache = c
			directory = NewCachedDirectory(directory, c)
			log.Printf("[schedule] Display names cached in Redis at %s (TTL: %s)", cfg.RedisAddr, cfg.TTL)
		}
	}

	m.engine = NewEngine(NewRepository(db), NewMapper(directory), m.policy)
	if m.eventBus != nil {
		m.engine.SetEventBus(m.eventBus)
	} else {
		log.Println("[schedule] Warning: eventBus not set, events will not be published")
	}

	log.Printf("[schedule] Module started (depends on: auth, policy: %+v)", m.policy)
	return nil
}

func (m *ScheduleModule) Stop(_ context.Context) error {
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			log.Printf("[schedule] Error closing Redis connection: %v", err)
		}
	}
	if err := storage.Close(m.db); err != nil {
		log.Printf("[schedule] Error closing database: %v", err)
	}
	log.Println("[schedule] Module stopped")
	return nil
}

func (m *ScheduleModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"driver": m.dbCfg.Driver,
		"policy": m.policy,
	}
	if m.cache != nil {
		details["cache"] = m.cache.Stats()
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}
