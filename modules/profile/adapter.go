package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// profileAdapter implements ProfilePort over the profile module's
// service container.
type profileAdapter struct {
	container mono.ServiceContainer
}

// NewProfileAdapter creates a new adapter for profile services.
func NewProfileAdapter(container mono.ServiceContainer) ProfilePort {
	if container == nil {
		panic("profile adapter requires non-nil ServiceContainer")
	}
	return &profileAdapter{container: container}
}

func (a *profileAdapter) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := a.call(ctx, "create-profile", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *profileAdapter) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	req := GetProfileRequest{UserID: userID}
	var resp ProfileResponse
	if err := a.call(ctx, "get-profile", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, ErrNotFound
	}
	return &resp, nil
}

func (a *profileAdapter) ListProfiles(ctx context.Context) (*ListProfilesResponse, error) {
	var resp ListProfilesResponse
	if err := a.call(ctx, "list-profiles", &ListProfilesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *profileAdapter) IncrementHelpCount(ctx context.Context, userID string) (*ProfileResponse, error) {
	req := IncrementHelpCountRequest{UserID: userID}
	var resp ProfileResponse
	if err := a.call(ctx, "increment-help-count", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, ErrNotFound
	}
	return &resp, nil
}

func (a *profileAdapter) DeleteProfile(ctx context.Context, userID string) error {
	req := DeleteProfileRequest{UserID: userID}
	var resp DeleteProfileResponse
	if err := a.call(ctx, "delete-profile", &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return ErrNotFound
	}
	return nil
}

func (a *profileAdapter) call(ctx context.Context, service string, req, resp any) error {
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
