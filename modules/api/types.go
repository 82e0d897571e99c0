package api

import (
	"time"

	"github.com/Dimaschel/FullStack/modules/profile"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Number   string `json:"number"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Role         string `json:"role"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Number    string    `json:"number"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MeResponse is the current user together with their profile, if any.
type MeResponse struct {
	UserResponse
	Profile *profile.ProfileResponse `json:"profile,omitempty"`
}

// CreateScheduleRequest is the body of POST /schedules.
type CreateScheduleRequest struct {
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// RescheduleRequest is the body of PATCH /schedules/:id/date.
type RescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// RatingRequest is the body of PATCH /schedules/:id/rating.
type RatingRequest struct {
	Value int `json:"value"`
}

// StatusRequest is the body of PATCH /schedules/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// CreateProfileRequest is the body of POST /profiles.
type CreateProfileRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
