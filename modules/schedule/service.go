package schedule

import (
	"context"
	"log"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/go-monolith/mono"
)

// Service handlers never return an error for lifecycle failures: the
// failure travels in the reply so its kind survives the container.

func (m *ScheduleModule) createSchedule(ctx context.Context, req CreateScheduleRequest, _ *mono.Msg) (ConfirmationReply, error) {
	s, err := m.engine.Create(ctx, req.Actor, req.Description, req.ScheduledAt)
	return confirm(s, "", err, "schedule created"), nil
}

func (m *ScheduleModule) getSchedule(ctx context.Context, req ScheduleRequest, _ *mono.Msg) (ScheduleReply, error) {
	v, err := m.engine.Get(ctx, req.ID)
	if err != nil {
		return ScheduleReply{Failure: failed(err)}, nil
	}
	return ScheduleReply{Schedule: &v}, nil
}

func (m *ScheduleModule) listSchedules(ctx context.Context, _ ListSchedulesRequest, _ *mono.Msg) (ListSchedulesReply, error) {
	views, err := m.engine.List(ctx)
	if err != nil {
		return ListSchedulesReply{Failure: failed(err)}, nil
	}
	return ListSchedulesReply{Schedules: views, Total: len(views)}, nil
}

func (m *ScheduleModule) reschedule(ctx context.Context, req RescheduleRequest, _ *mono.Msg) (ConfirmationReply, error) {
	s, err := m.engine.Reschedule(ctx, req.ID, req.Actor, req.ScheduledAt)
	return confirm(s, req.ID, err, "schedule rescheduled"), nil
}

func (m *ScheduleModule) deleteSchedule(ctx context.Context, req ScheduleRequest, _ *mono.Msg) (ConfirmationReply, error) {
	err := m.engine.Delete(ctx, req.ID, req.Actor)
	return confirm(nil, req.ID, err, "schedule deleted"), nil
}

func (m *ScheduleModule) rateSchedule(ctx context.Context, req RateScheduleRequest, _ *mono.Msg) (ConfirmationReply, error) {
	s, err := m.engine.SetRating(ctx, req.ID, req.Value, req.Actor)
	return confirm(s, req.ID, err, "rating updated"), nil
}

func (m *ScheduleModule) setScheduleStatus(ctx context.Context, req SetStatusRequest, _ *mono.Msg) (ConfirmationReply, error) {
	s, err := m.engine.SetStatus(ctx, req.ID, req.Status, req.Actor)
	return confirm(s, req.ID, err, "status updated"), nil
}

func (m *ScheduleModule) claimSchedule(ctx context.Context, req ScheduleRequest, _ *mono.Msg) (ConfirmationReply, error) {
	s, err := m.engine.Claim(ctx, req.ID, req.Actor)
	return confirm(s, req.ID, err, "schedule claimed"), nil
}

func (m *ScheduleModule) releaseSchedule(ctx context.Context, req ScheduleRequest, _ *mono.Msg) (ConfirmationReply, error) {
	s, err := m.engine.Release(ctx, req.ID, req.Actor)
	return confirm(s, req.ID, err, "schedule released"), nil
}

func confirm(s *domain.Schedule, id string, err error, message string) ConfirmationReply {
	if err != nil {
		return ConfirmationReply{Failure: failed(err)}
	}
	reply := ConfirmationReply{ID: id, Message: message}
	if s != nil {
		reply.ID = s.ID
		reply.Status = string(s.Status)
	}
	return reply
}

// failed converts err for the wire, logging anything outside the
// lifecycle taxonomy.
func failed(err error) Failure {
	f := failureOf(err)
	if f.Code == domain.CodeInternal {
		log.Printf("[schedule] Internal error: %v", err)
	}
	return f
}
