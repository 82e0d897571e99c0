package schedule

import (
	"strings"
	"time"

	"github.com/Dimaschel/FullStack/domain/user"
)

// Status represents the lifecycle state of a schedule.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus converts a status name into a Status. Names are case-insensitive.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return st, nil
	default:
		return "", validationf("unknown status %q", s)
	}
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Schedule is a unit of requested help: a task the owner wants done at
// ScheduledAt, optionally claimed by a responder.
type Schedule struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	Rating      *int      `json:"rating,omitempty"`
	Status      Status    `gorm:"size:16;not null;index" json:"status"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"owner_id"`
	ResponderID *string   `gorm:"size:36;index" json:"responder_id,omitempty"`
	Version     int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Schedule entity.
func (Schedule) TableName() string {
	return "schedules"
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string    `json:"id"`
	Role user.Role `json:"role"`
}

// IsOwner reports whether id owns the schedule.
func (s *Schedule) IsOwner(id string) bool {
	return s.OwnerID == id
}

// IsResponder reports whether id is the current responder.
func (s *Schedule) IsResponder(id string) bool {
	return s.ResponderID != nil && *s.ResponderID == id
}
