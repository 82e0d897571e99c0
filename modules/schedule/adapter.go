package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// scheduleAdapter implements SchedulePort over the schedule module's
// service container.
type scheduleAdapter struct {
	container mono.ServiceContainer
}

// NewScheduleAdapter creates a new adapter for schedule services.
func NewScheduleAdapter(container mono.ServiceContainer) SchedulePort {
	if container == nil {
		panic("schedule adapter requires non-nil ServiceContainer")
	}
	return &scheduleAdapter{container: container}
}

func (a *scheduleAdapter) Create(ctx context.Context, actor domain.Actor, description string, at time.Time) (*Confirmation, error) {
	req := CreateScheduleRequest{Actor: actor, Description: description, ScheduledAt: at}
	return a.confirm(ctx, "create-schedule", &req)
}

func (a *scheduleAdapter) Get(ctx context.Context, id string) (*View, error) {
	req := ScheduleRequest{ID: id}
	var resp ScheduleReply
	if err := a.call(ctx, "get-schedule", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Schedule == nil {
		return nil, fmt.Errorf("get-schedule returned no schedule for %s", id)
	}
	return resp.Schedule, nil
}

func (a *scheduleAdapter) List(ctx context.Context) ([]View, error) {
	var resp ListSchedulesReply
	if err := a.call(ctx, "list-schedules", &ListSchedulesRequest{}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Schedules, nil
}

func (a *scheduleAdapter) Reschedule(ctx context.Context, id string, actor domain.Actor, at time.Time) (*Confirmation, error) {
	req := RescheduleRequest{ID: id, Actor: actor, ScheduledAt: at}
	return a.confirm(ctx, "reschedule", &req)
}

func (a *scheduleAdapter) Delete(ctx context.Context, id string, actor domain.Actor) (*Confirmation, error) {
	req := ScheduleRequest{ID: id, Actor: actor}
	return a.confirm(ctx, "delete-schedule", &req)
}

func (a *scheduleAdapter) Rate(ctx context.Context, id string, actor domain.Actor, value int) (*Confirmation, error) {
	req := RateScheduleRequest{ID: id, Actor: actor, Value: value}
	return a.confirm(ctx, "rate-schedule", &req)
}

func (a *scheduleAdapter) SetStatus(ctx context.Context, id string, actor domain.Actor, status string) (*Confirmation, error) {
	req := SetStatusRequest{ID: id, Actor: actor, Status: status}
	return a.confirm(ctx, "set-schedule-status", &req)
}

func (a *scheduleAdapter) Claim(ctx context.Context, id string, actor domain.Actor) (*Confirmation, error) {
	req := ScheduleRequest{ID: id, Actor: actor}
	return a.confirm(ctx, "claim-schedule", &req)
}

func (a *scheduleAdapter) Release(ctx context.Context, id string, actor domain.Actor) (*Confirmation, error) {
	req := ScheduleRequest{ID: id, Actor: actor}
	return a.confirm(ctx, "release-schedule", &req)
}

func (a *scheduleAdapter) confirm(ctx context.Context, service string, req any) (*Confirmation, error) {
	var resp ConfirmationReply
	if err := a.call(ctx, service, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &Confirmation{ID: resp.ID, Status: resp.Status, Message: resp.Message}, nil
}

func (a *scheduleAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}
