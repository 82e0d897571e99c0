package profile

import (
	"context"
	"time"
)

// CreateProfileRequest is the request for creating a profile.
type CreateProfileRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
}

// GetProfileRequest is the request for a user's profile.
type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

// ListProfilesRequest is the request for listing profiles.
type ListProfilesRequest struct{}

// IncrementHelpCountRequest is the request for bumping a help counter.
type IncrementHelpCountRequest struct {
	UserID string `json:"user_id"`
}

// DeleteProfileRequest is the request for removing a profile.
type DeleteProfileRequest struct {
	UserID string `json:"user_id"`
}

// DeleteProfileResponse is the response for removing a profile.
type DeleteProfileResponse struct {
	Deleted bool `json:"deleted"`
}

// ProfileResponse is the response for a single profile. Found is false
// when the user has no profile.
type ProfileResponse struct {
	Found     bool      `json:"found"`
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Age       int       `json:"age"`
	HelpCount int       `json:"help_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListProfilesResponse is the response for listing profiles.
type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Total    int               `json:"total"`
}

// ProfilePort defines the interface for profile operations.
type ProfilePort interface {
	CreateProfile(ctx context.Context, req *CreateProfileRequest) (*ProfileResponse, error)
	// GetProfile returns ErrNotFound when the user has no profile.
	GetProfile(ctx context.Context, userID string) (*ProfileResponse, error)
	ListProfiles(ctx context.Context) (*ListProfilesResponse, error)
	IncrementHelpCount(ctx context.Context, userID string) (*ProfileResponse, error)
	DeleteProfile(ctx context.Context, userID string) error
}
