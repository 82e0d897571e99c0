package schedule

import (
	"context"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
)

// Failure carries a typed lifecycle failure across the service container.
// Both fields are empty on success.
type Failure struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

func failureOf(err error) Failure {
	if err == nil {
		return Failure{}
	}
	return Failure{Code: domain.Code(err), Error: err.Error()}
}

// Err rebuilds the failure as a domain error, nil on success.
func (f Failure) Err() error {
	return domain.FromCode(f.Code, f.Error)
}

// CreateScheduleRequest is the request for creating a schedule.
type CreateScheduleRequest struct {
	Actor       domain.Actor `json:"actor"`
	Description string       `json:"description"`
	ScheduledAt time.Time    `json:"scheduled_at"`
}

// ScheduleRequest addresses one schedule on behalf of an actor.
type ScheduleRequest struct {
	ID    string       `json:"id"`
	Actor domain.Actor `json:"actor"`
}

// RescheduleRequest is the request for moving a schedule.
type RescheduleRequest struct {
	ID          string       `json:"id"`
	Actor       domain.Actor `json:"actor"`
	ScheduledAt time.Time    `json:"scheduled_at"`
}

// RateScheduleRequest is the request for rating a schedule.
type RateScheduleRequest struct {
	ID    string       `json:"id"`
	Actor domain.Actor `json:"actor"`
	Value int          `json:"value"`
}

// SetStatusRequest is the request for overwriting a schedule's status.
type SetStatusRequest struct {
	ID     string       `json:"id"`
	Actor  domain.Actor `json:"actor"`
	Status string       `json:"status"`
}

// ListSchedulesRequest is the request for listing schedules.
type ListSchedulesRequest struct{}

// ScheduleReply carries a single schedule view.
type ScheduleReply struct {
	Failure
	Schedule *View `json:"schedule,omitempty"`
}

// ListSchedulesReply carries every schedule view.
type ListSchedulesReply struct {
	Failure
	Schedules []View `json:"schedules"`
	Total     int    `json:"total"`
}

// ConfirmationReply acknowledges a state change.
type ConfirmationReply struct {
	Failure
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Confirmation acknowledges a state change.
type Confirmation struct {
	ID      string `json:"id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// SchedulePort is how driving adapters reach the schedule module. Failures
// are domain errors, so errors.Is against the domain sentinels works.
type SchedulePort interface {
	Create(ctx context.Context, actor domain.Actor, description string, at time.Time) (*Confirmation, error)
	Get(ctx context.Context, id string) (*View, error)
	List(ctx context.Context) ([]View, error)
	Reschedule(ctx context.Context, id string, actor domain.Actor, at time.Time) (*Confirmation, error)
	Delete(ctx context.Context, id string, actor domain.Actor) (*Confirmation, error)
	Rate(ctx context.Context, id string, actor domain.Actor, value int) (*Confirmation, error)
	SetStatus(ctx context.Context, id string, actor domain.Actor, status string) (*Confirmation, error)
	Claim(ctx context.Context, id string, actor domain.Actor) (*Confirmation, error)
	Release(ctx context.Context, id string, actor domain.Actor) (*Confirmation, error)
}
