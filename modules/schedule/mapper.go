package schedule

import (
	"context"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
)

// Directory resolves a user id to the name shown next to a schedule.
// Unknown ids fail with a domain NotFound.
type Directory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// View is a schedule enriched with the display names of its participants.
type View struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Rating        *int      `json:"rating,omitempty"`
	Status        string    `json:"status"`
	OwnerID       string    `json:"owner_id"`
	OwnerName     string    `json:"owner_name"`
	ResponderID   *string   `json:"responder_id,omitempty"`
	ResponderName *string   `json:"responder_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Mapper turns stored schedules into views.
type Mapper struct {
	directory Directory
}

// NewMapper creates a mapper backed by directory.
func NewMapper(directory Directory) *Mapper {
	return &Mapper{directory: directory}
}

// ToView maps s without modifying it.
func (m *Mapper) ToView(ctx context.Context, s *domain.Schedule) (View, error) {
	owner, err := m.directory.DisplayName(ctx, s.OwnerID)
	if err != nil {
		return View{}, err
	}

	v := View{
		ID:          s.ID,
		Description: s.Description,
		ScheduledAt: s.ScheduledAt,
		Rating:      copyPtr(s.Rating),
		Status:      string(s.Status),
		OwnerID:     s.OwnerID,
		OwnerName:   owner,
		ResponderID: copyPtr(s.ResponderID),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.ResponderID != nil {
		name, err := m.directory.DisplayName(ctx, *s.ResponderID)
		if err != nil {
			return View{}, err
		}
		v.ResponderName = &name
	}
	return v, nil
}

// ToViews maps every schedule, preserving order.
func (m *Mapper) ToViews(ctx context.Context, schedules []*domain.Schedule) ([]View, error) {
	views := make([]View, 0, len(schedules))
	for _, s := range schedules {
		v, err := m.ToView(ctx, s)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
