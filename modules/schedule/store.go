package schedule

import (
	"context"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
)

// Store persists schedules. Get, Mutate and Delete report a missing id as
// a domain NotFound failure.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Schedule, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Save inserts s, assigning an ID when empty, or overwrites the row
	// with the same ID.
	Save(ctx context.Context, s *domain.Schedule) error
	// Mutate loads the schedule, applies fn and writes the result in one
	// transaction. Nothing is written when fn fails. A write that lost a
	// race against another mutation fails with a Conflict.
	Mutate(ctx context.Context, id string, fn func(*domain.Schedule) error) (*domain.Schedule, error)
	// Delete removes the schedule if check, run against the current row,
	// allows it. It returns the removed schedule.
	Delete(ctx context.Context, id string, check func(*domain.Schedule) error) (*domain.Schedule, error)
	List(ctx context.Context) ([]*domain.Schedule, error)
}
