package schedule

import (
	"context"
	"log"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/Dimaschel/FullStack/events"
	"github.com/go-monolith/mono"
)

// Engine runs the schedule lifecycle: every operation loads through the
// Store, applies a domain transition and publishes the matching event.
// It keeps no state between calls.
type Engine struct {
	store  Store
	mapper *Mapper
	policy domain.Policy
	bus    mono.EventBus
}

// NewEngine creates an engine. Events are dropped until SetEventBus is called.
func NewEngine(store Store, mapper *Mapper, policy domain.Policy) *Engine {
	return &Engine{
		store:  store,
		mapper: mapper,
		policy: policy,
	}
}

// SetEventBus sets the bus lifecycle events are published on.
func (e *Engine) SetEventBus(bus mono.EventBus) {
	e.bus = bus
}

// Policy returns the active lifecycle policy.
func (e *Engine) Policy() domain.Policy {
	return e.policy
}

// Create stores a new OPEN schedule owned by actor.
func (e *Engine) Create(ctx context.Context, actor domain.Actor, description string, at time.Time) (*domain.Schedule, error) {
	s, err := domain.New(actor, description, at)
	if err != nil {
		return nil, err
	}
	if err := e.store.Save(ctx, s); err != nil {
		return nil, err
	}

	e.publish("ScheduleCreated", func(bus mono.EventBus) error {
		return events.ScheduleCreatedV1.Publish(bus, events.ScheduleCreatedEvent{
			ScheduleID:  s.ID,
			OwnerID:     s.OwnerID,
			Description: s.Description,
			ScheduledAt: s.ScheduledAt,
			CreatedAt:   s.CreatedAt,
		}, nil)
	})
	return s, nil
}

// Reschedule moves a schedule to a new time. Only the owner may do so.
func (e *Engine) Reschedule(ctx context.Context, id string, actor domain.Actor, at time.Time) (*domain.Schedule, error) {
	s, err := e.store.Mutate(ctx, id, func(s *domain.Schedule) error {
		return s.Reschedule(actor, at)
	})
	if err != nil {
		return nil, err
	}

	e.publish("ScheduleRescheduled", func(bus mono.EventBus) error {
		return events.ScheduleRescheduledV1.Publish(bus, events.ScheduleRescheduledEvent{
			ScheduleID:  s.ID,
			OwnerID:     s.OwnerID,
			ScheduledAt: s.ScheduledAt,
		}, nil)
	})
	return s, nil
}

// Delete removes a schedule owned by actor.
func (e *Engine) Delete(ctx context.Context, id string, actor domain.Actor) error {
	s, err := e.store.Delete(ctx, id, func(s *domain.Schedule) error {
		return s.CheckDelete(actor, e.policy)
	})
	if err != nil {
		return err
	}

	e.publish("ScheduleDeleted", func(bus mono.EventBus) error {
		return events.ScheduleDeletedV1.Publish(bus, events.ScheduleDeletedEvent{
			ScheduleID: s.ID,
			OwnerID:    s.OwnerID,
			DeletedAt:  time.Now(),
		}, nil)
	})
	return nil
}

// Get returns the view of one schedule.
func (e *Engine) Get(ctx context.Context, id string) (View, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return e.mapper.ToView(ctx, s)
}

// List returns views of all schedules in store order.
func (e *Engine) List(ctx context.Context) ([]View, error) {
	schedules, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return e.mapper.ToViews(ctx, schedules)
}

// SetRating rates a completed schedule.
func (e *Engine) SetRating(ctx context.Context, id string, value int, actor domain.Actor) (*domain.Schedule, error) {
	s, err := e.store.Mutate(ctx, id, func(s *domain.Schedule) error {
		return s.Rate(actor, value, e.policy)
	})
	if err != nil {
		return nil, err
	}

	e.publish("ScheduleRated", func(bus mono.EventBus) error {
		return events.ScheduleRatedV1.Publish(bus, events.ScheduleRatedEvent{
			ScheduleID:  s.ID,
			ResponderID: deref(s.ResponderID),
			Rating:      value,
			RatedBy:     actor.ID,
			RatedAt:     time.Now(),
		}, nil)
	})
	return s, nil
}

// SetStatus overwrites the status of a schedule. No transition guard applies.
func (e *Engine) SetStatus(ctx context.Context, id string, status string, actor domain.Actor) (*domain.Schedule, error) {
	var from domain.Status
	s, err := e.store.Mutate(ctx, id, func(s *domain.Schedule) error {
		from = s.Status
		return s.SetStatus(domain.Status(status))
	})
	if err != nil {
		return nil, err
	}

	e.publish("ScheduleStatusChanged", func(bus mono.EventBus) error {
		return events.ScheduleStatusChangedV1.Publish(bus, events.ScheduleStatusChangedEvent{
			ScheduleID:  s.ID,
			OwnerID:     s.OwnerID,
			ResponderID: deref(s.ResponderID),
			From:        string(from),
			To:          string(s.Status),
			ChangedBy:   actor.ID,
			ChangedAt:   time.Now(),
		}, nil)
	})
	return s, nil
}

// Claim makes actor the responder of an OPEN schedule.
func (e *Engine) Claim(ctx context.Context, id string, actor domain.Actor) (*domain.Schedule, error) {
	s, err := e.store.Mutate(ctx, id, func(s *domain.Schedule) error {
		return s.Claim(actor)
	})
	if err != nil {
		return nil, err
	}

	e.publish("ScheduleClaimed", func(bus mono.EventBus) error {
		return events.ScheduleClaimedV1.Publish(bus, events.ScheduleClaimedEvent{
			ScheduleID:  s.ID,
			OwnerID:     s.OwnerID,
			ResponderID: actor.ID,
			ClaimedAt:   time.Now(),
		}, nil)
	})
	return s, nil
}

// Release drops actor's claim on a schedule.
func (e *Engine) Release(ctx context.Context, id string, actor domain.Actor) (*domain.Schedule, error) {
	s, err := e.store.Mutate(ctx, id, func(s *domain.Schedule) error {
		return s.Release(actor)
	})
	if err != nil {
		return nil, err
	}

	e.publish("ScheduleReleased", func(bus mono.EventBus) error {
		return events.ScheduleReleasedV1.Publish(bus, events.ScheduleReleasedEvent{
			ScheduleID:  s.ID,
			OwnerID:     s.OwnerID,
			ResponderID: actor.ID,
			ReleasedAt:  time.Now(),
		}, nil)
	})
	return s, nil
}

// publish is best-effort: the change is already committed.
func (e *Engine) publish(name string, fn func(mono.EventBus) error) {
	if e.bus == nil {
		return
	}
	if err := fn(e.bus); err != nil {
		log.Printf("[schedule] Warning: failed to publish %s event: %v", name, err)
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
