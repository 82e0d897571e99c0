package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/profile"
	"github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/Dimaschel/FullStack/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

var (
	// ErrInvalidName is returned when the profile name is blank.
	ErrInvalidName = errors.New("name is required")
	// ErrInvalidAge is returned when the age is outside 0..150.
	ErrInvalidAge = errors.New("age must be between 0 and 150")
)

func (m *ProfileModule) createProfile(ctx context.Context, req CreateProfileRequest, _ *mono.Msg) (ProfileResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ProfileResponse{}, ErrInvalidName
	}
	if req.Age < 0 || req.Age > 150 {
		return ProfileResponse{}, ErrInvalidAge
	}
	if req.UserID == "" {
		return ProfileResponse{}, fmt.Errorf("user_id is required")
	}

	now := time.Now()
	p := &domain.Profile{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Name:      name,
		Age:       req.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.Create(ctx, p); err != nil {
		return ProfileResponse{}, err
	}

	log.Printf("[profile] Created profile %s for user %s", p.ID, p.UserID)
	return toProfileResponse(p), nil
}

func (m *ProfileModule) getProfile(ctx context.Context, req GetProfileRequest, _ *mono.Msg) (ProfileResponse, error) {
	p, err := m.repo.FindByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ProfileResponse{Found: false}, nil
		}
		return ProfileResponse{}, err
	}
	return toProfileResponse(p), nil
}

func (m *ProfileModule) listProfiles(ctx context.Context, _ ListProfilesRequest, _ *mono.Msg) (ListProfilesResponse, error) {
	profiles, err := m.repo.FindAll(ctx)
	if err != nil {
		return ListProfilesResponse{}, err
	}

	resp := ListProfilesResponse{
		Profiles: make([]ProfileResponse, 0, len(profiles)),
		Total:    len(profiles),
	}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, toProfileResponse(p))
	}
	return resp, nil
}

func (m *ProfileModule) incrementHelpCount(ctx context.Context, req IncrementHelpCountRequest, _ *mono.Msg) (ProfileResponse, error) {
	p, err := m.repo.IncrementHelpCount(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ProfileResponse{Found: false}, nil
		}
		return ProfileResponse{}, err
	}
	return toProfileResponse(p), nil
}

func (m *ProfileModule) deleteProfile(ctx context.Context, req DeleteProfileRequest, _ *mono.Msg) (DeleteProfileResponse, error) {
	if err := m.repo.DeleteByUserID(ctx, req.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteProfileResponse{Deleted: false}, nil
		}
		return DeleteProfileResponse{}, err
	}
	return DeleteProfileResponse{Deleted: true}, nil
}

// handleStatusChanged credits the responder when a schedule becomes
// COMPLETED. Helpers without a profile are skipped.
func (m *ProfileModule) handleStatusChanged(ctx context.Context, event events.ScheduleStatusChangedEvent, _ *mono.Msg) error {
	if event.To != string(schedule.StatusCompleted) || event.From == event.To || event.ResponderID == "" {
		return nil
	}

	p, err := m.repo.IncrementHelpCount(ctx, event.ResponderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("[profile] No profile for responder %s of schedule %s, help not counted", event.ResponderID, event.ScheduleID)
			return nil
		}
		return fmt.Errorf("failed to count help for %s: %w", event.ResponderID, err)
	}

	log.Printf("[profile] Schedule %s completed: %s now has %d helps", event.ScheduleID, p.UserID, p.HelpCount)
	return nil
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		Found:     true,
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Age:       p.Age,
		HelpCount: p.HelpCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
