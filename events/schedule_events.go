package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ScheduleCreatedEvent is emitted when a needy user posts a new schedule.
type ScheduleCreatedEvent struct {
	ScheduleID  string    `json:"schedule_id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScheduleCreatedV1 is the typed event definition for schedule creation.
// Subject: events.schedule.v1.schedule-created
var ScheduleCreatedV1 = helper.EventDefinition[ScheduleCreatedEvent](
	"schedule", "ScheduleCreated", "v1",
)

// ScheduleRescheduledEvent is emitted when the owner moves a schedule.
type ScheduleRescheduledEvent struct {
	ScheduleID  string    `json:"schedule_id"`
	OwnerID     string    `json:"owner_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// ScheduleRescheduledV1 is the typed event definition for date changes.
var ScheduleRescheduledV1 = helper.EventDefinition[ScheduleRescheduledEvent](
	"schedule", "ScheduleRescheduled", "v1",
)

// ScheduleClaimedEvent is emitted when a helper claims an open schedule.
type ScheduleClaimedEvent struct {
	ScheduleID  string    `json:"schedule_id"`
	OwnerID     string    `json:"owner_id"`
	ResponderID string    `json:"responder_id"`
	ClaimedAt   time.Time `json:"claimed_at"`
}

// ScheduleClaimedV1 is the typed event definition for claims.
var ScheduleClaimedV1 = helper.EventDefinition[ScheduleClaimedEvent](
	"schedule", "ScheduleClaimed", "v1",
)

// ScheduleReleasedEvent is emitted when a helper drops a claim.
type ScheduleReleasedEvent struct {
	ScheduleID  string    `json:"schedule_id"`
	OwnerID     string    `json:"owner_id"`
	ResponderID string    `json:"responder_id"`
	ReleasedAt  time.Time `json:"released_at"`
}

// ScheduleReleasedV1 is the typed event definition for releases.
var ScheduleReleasedV1 = helper.EventDefinition[ScheduleReleasedEvent](
	"schedule", "ScheduleReleased", "v1",
)

// ScheduleStatusChangedEvent is emitted on every direct status write.
// ResponderID is empty when the schedule has no responder.
type ScheduleStatusChangedEvent struct {
	ScheduleID  string    `json:"schedule_id"`
	OwnerID     string    `json:"owner_id"`
	ResponderID string    `json:"responder_id,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedBy   string    `json:"changed_by"`
	ChangedAt   time.Time `json:"changed_at"`
}

// ScheduleStatusChangedV1 is the typed event definition for status writes.
// Subject: events.schedule.v1.schedule-status-changed
var ScheduleStatusChangedV1 = helper.EventDefinition[ScheduleStatusChangedEvent](
	"schedule", "ScheduleStatusChanged", "v1",
)

// ScheduleRatedEvent is emitted when a completed schedule receives a rating.
type ScheduleRatedEvent struct {
	ScheduleID  string    `json:"schedule_id"`
	ResponderID string    `json:"responder_id,omitempty"`
	Rating      int       `json:"rating"`
	RatedBy     string    `json:"rated_by"`
	RatedAt     time.Time `json:"rated_at"`
}

// ScheduleRatedV1 is the typed event definition for ratings.
var ScheduleRatedV1 = helper.EventDefinition[ScheduleRatedEvent](
	"schedule", "ScheduleRated", "v1",
)

// ScheduleDeletedEvent is emitted when the owner removes a schedule.
type ScheduleDeletedEvent struct {
	ScheduleID string    `json:"schedule_id"`
	OwnerID    string    `json:"owner_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// ScheduleDeletedV1 is the typed event definition for schedule deletion.
var ScheduleDeletedV1 = helper.EventDefinition[ScheduleDeletedEvent](
	"schedule", "ScheduleDeleted", "v1",
)
