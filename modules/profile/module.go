package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/Dimaschel/FullStack/domain/profile"
	"github.com/Dimaschel/FullStack/events"
	"github.com/Dimaschel/FullStack/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// ProfileModule stores user profiles and counts completed helps by
// listening to schedule events.
type ProfileModule struct {
	db    *gorm.DB
	repo  *Repository
	dbCfg storage.Config
}

var _ mono.Module = (*ProfileModule)(nil)
var _ mono.ServiceProviderModule = (*ProfileModule)(nil)
var _ mono.EventConsumerModule = (*ProfileModule)(nil)
var _ mono.HealthCheckableModule = (*ProfileModule)(nil)

// NewModule creates a ProfileModule configured from PROFILE_DB_* variables.
func NewModule() *ProfileModule {
	return &ProfileModule{
		dbCfg: storage.ConfigFromEnv("PROFILE", "profiles.db"),
	}
}

func (m *ProfileModule) Name() string {
	return "profile"
}

func (m *ProfileModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-profile", json.Unmarshal, json.Marshal, m.createProfile,
	); err != nil {
		return fmt.Errorf("failed to register create-profile service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-profile", json.Unmarshal, json.Marshal, m.getProfile,
	); err != nil {
		return fmt.Errorf("failed to register get-profile service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-profiles", json.Unmarshal, json.Marshal, m.listProfiles,
	); err != nil {
		return fmt.Errorf("failed to register list-profiles service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "increment-help-count", json.Unmarshal, json.Marshal, m.incrementHelpCount,
	); err != nil {
		return fmt.Errorf("failed to register increment-help-count service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-profile", json.Unmarshal, json.Marshal, m.deleteProfile,
	); err != nil {
		return fmt.Errorf("failed to register delete-profile service: %w", err)
	}

	log.Printf("[profile] Registered services: create-profile, get-profile, list-profiles, increment-help-count, delete-profile")
	return nil
}

func (m *ProfileModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.ScheduleStatusChangedV1, m.handleStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register ScheduleStatusChanged consumer: %w", err)
	}

	log.Printf("[profile] Registered event consumers: ScheduleStatusChanged")
	return nil
}

func (m *ProfileModule) Start(_ context.Context) error {
	db, err := storage.Open(m.dbCfg, &domain.Profile{})
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	m.db = db
	m.repo = NewRepository(db)

	log.Println("[profile] Module started - listening for schedule events")
	return nil
}

func (m *ProfileModule) Stop(_ context.Context) error {
	if err := storage.Close(m.db); err != nil {
		log.Printf("[profile] Error closing database: %v", err)
	}
	log.Println("[profile] Module stopped")
	return nil
}

func (m *ProfileModule) Health(ctx context.Context) mono.HealthStatus {
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

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.dbCfg.Driver,
		},
	}
}
