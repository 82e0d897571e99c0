package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the GORM implementation of Store.
type Repository struct {
	db *gorm.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new schedule repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a schedule by its ID.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Schedule, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// Exists reports whether a schedule with id is stored.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Schedule{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check schedule existence: %w", err)
	}
	return count > 0, nil
}

// Save inserts a new schedule or overwrites an existing one.
func (r *Repository) Save(ctx context.Context, s *domain.Schedule) error {
	db := r.db.WithContext(ctx)
	if s.ID == "" {
		s.ID = uuid.New().String()
		s.Version = 1
		if err := db.Create(s).Error; err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}
		return nil
	}

	s.Version++
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error; err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// Mutate applies fn to the stored schedule inside a transaction and writes
// it back guarded by the version it was read at.
func (r *Repository) Mutate(ctx context.Context, id string, fn func(*domain.Schedule) error) (*domain.Schedule, error) {
	var out *domain.Schedule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := r.find(r.lock(tx), id)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}

		read := s.Version
		s.Version = read + 1
		s.UpdatedAt = time.Now()
		result := tx.Model(&domain.Schedule{}).
			Where("id = ? AND version = ?", id, read).
			Updates(map[string]any{
				"description":  s.Description,
				"scheduled_at": s.ScheduledAt,
				"rating":       s.Rating,
				"status":       s.Status,
				"responder_id": s.ResponderID,
				"version":      s.Version,
				"updated_at":   s.UpdatedAt,
			})
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}
		if result.RowsAffected == 0 {
			return domain.Conflict(fmt.Sprintf("schedule %s was modified concurrently", id))
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the schedule when check allows it.
func (r *Repository) Delete(ctx context.Context, id string, check func(*domain.Schedule) error) (*domain.Schedule, error) {
	var out *domain.Schedule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := r.find(r.lock(tx), id)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(s); err != nil {
				return err
			}
		}

		result := tx.Where("id = ? AND version = ?", id, s.Version).Delete(&domain.Schedule{})
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}
		if result.RowsAffected == 0 {
			return domain.Conflict(fmt.Sprintf("schedule %s was modified concurrently", id))
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List retrieves all schedules, oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Schedule, error) {
	var schedules []*domain.Schedule
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *Repository) find(db *gorm.DB, id string) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(id)
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return &s, nil
}

// lock takes a row lock where the dialect supports it. SQLite serializes
// writers on its own.
func (r *Repository) lock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
