package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is how other modules reach the auth module.
type AuthPort interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*user.Claims, error)
	// GetUser returns ErrUserNotFound for unknown ids.
	GetUser(ctx context.Context, userID string) (*user.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthAdapter implements AuthPort over the auth module's service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	if container == nil {
		panic("auth adapter requires non-nil ServiceContainer")
	}
	return &AuthAdapter{container: container}
}

// Register creates an account via the register service.
func (a *AuthAdapter) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := a.call(ctx, "register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for tokens via the login service.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp LoginResponse
	if err := a.call(ctx, "login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh rotates a token pair via the refresh-token service.
func (a *AuthAdapter) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	req := RefreshRequest{RefreshToken: refreshToken}
	var resp LoginResponse
	if err := a.call(ctx, "refresh-token", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken validates an access token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*user.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := a.call(ctx, "validate-token", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &user.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
		Role:   user.Role(resp.Role),
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*user.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse
	if err := a.call(ctx, "get-user", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, ErrUserNotFound
	}

	return &user.User{
		ID:        resp.ID,
		Email:     resp.Email,
		Number:    resp.Number,
		Role:      user.Role(resp.Role),
		CreatedAt: resp.CreatedAt,
	}, nil
}

// DeleteUser removes a user via the delete-user service.
func (a *AuthAdapter) DeleteUser(ctx context.Context, userID string) error {
	req := DeleteUserRequest{UserID: userID}
	var resp DeleteUserResponse
	if err := a.call(ctx, "delete-user", &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return ErrUserNotFound
	}
	return nil
}

func (a *AuthAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}
