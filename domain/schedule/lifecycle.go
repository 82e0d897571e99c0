package schedule

import (
	"strings"
	"time"
)

// Policy tightens the lifecycle rules. The zero value is fully permissive:
// anyone may rate a completed schedule any number of times, and owners may
// delete schedules in every status.
type Policy struct {
	// OwnerOnlyRating restricts SetRating to the schedule owner.
	OwnerOnlyRating bool
	// RateOnce rejects rating a schedule that already has a rating.
	RateOnce bool
	// ProtectCompleted rejects deleting a COMPLETED schedule.
	ProtectCompleted bool
}

// New builds an OPEN schedule owned by owner. The ID is left empty for the
// store to assign.
func New(owner Actor, description string, at time.Time) (*Schedule, error) {
	if owner.ID == "" {
		return nil, validationf("owner is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, validationf("description is required")
	}
	if at.IsZero() {
		return nil, validationf("scheduled time is required")
	}
	return &Schedule{
		Description: description,
		ScheduledAt: at.UTC(),
		Status:      StatusOpen,
		OwnerID:     owner.ID,
	}, nil
}

// Reschedule moves the schedule to a new point in time. Only the owner may
// do so.
func (s *Schedule) Reschedule(actor Actor, at time.Time) error {
	if !s.IsOwner(actor.ID) {
		return forbiddenf("only the owner can reschedule schedule %s", s.ID)
	}
	if at.IsZero() {
		return validationf("scheduled time is required")
	}
	s.ScheduledAt = at.UTC()
	return nil
}

// CheckDelete reports whether actor may delete the schedule.
func (s *Schedule) CheckDelete(actor Actor, p Policy) error {
	if !s.IsOwner(actor.ID) {
		return forbiddenf("only the owner can delete schedule %s", s.ID)
	}
	if p.ProtectCompleted && s.Status == StatusCompleted {
		return invalidStatef("schedule %s is completed", s.ID)
	}
	return nil
}

// Claim makes actor the responder of an OPEN schedule and moves it to
// IN_PROGRESS.
func (s *Schedule) Claim(actor Actor) error {
	if s.Status != StatusOpen {
		return invalidStatef("cannot claim schedule %s in status %s", s.ID, s.Status)
	}
	// Reachable when an administrative status override reopened the
	// schedule without clearing its responder.
	if s.IsResponder(actor.ID) {
		return conflictf("schedule %s is already claimed by %s", s.ID, actor.ID)
	}
	id := actor.ID
	s.ResponderID = &id
	s.Status = StatusInProgress
	return nil
}

// Release drops actor's claim and reopens the schedule.
func (s *Schedule) Release(actor Actor) error {
	if !s.IsResponder(actor.ID) {
		return forbiddenf("schedule %s is not claimed by %s", s.ID, actor.ID)
	}
	if s.Status == StatusCompleted {
		return invalidStatef("cannot release completed schedule %s", s.ID)
	}
	s.ResponderID = nil
	s.Status = StatusOpen
	return nil
}

// Rate records a 1..5 rating on a COMPLETED schedule.
func (s *Schedule) Rate(actor Actor, value int, p Policy) error {
	if value < MinRating || value > MaxRating {
		return validationf("rating must be between %d and %d, got %d", MinRating, MaxRating, value)
	}
	if p.OwnerOnlyRating && !s.IsOwner(actor.ID) {
		return forbiddenf("only the owner can rate schedule %s", s.ID)
	}
	if s.Status != StatusCompleted {
		return invalidStatef("schedule %s can only be rated once completed, status is %s", s.ID, s.Status)
	}
	if p.RateOnce && s.Rating != nil {
		return invalidStatef("schedule %s is already rated", s.ID)
	}
	v := value
	s.Rating = &v
	return nil
}

// SetStatus overwrites the status without any transition guard. It is the
// administrative escape hatch: it neither assigns nor clears the responder.
func (s *Schedule) SetStatus(status Status) error {
	st, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	s.Status = st
	return nil
}
