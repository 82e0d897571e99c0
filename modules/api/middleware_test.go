package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/Dimaschel/FullStack/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort implements auth.AuthPort for testing. Tokens are looked up
// in the tokens map.
type mockAuthPort struct {
	tokens       map[string]*user.Claims
	users        map[string]*user.User
	registerFunc func(ctx context.Context, req *auth.RegisterRequest) (*auth.RegisterResponse, error)
	loginFunc    func(ctx context.Context, email, password string) (*auth.LoginResponse, error)
	deleted      []string
}

var _ auth.AuthPort = (*mockAuthPort)(nil)

func (m *mockAuthPort) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.RegisterResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) Login(ctx context.Context, email, password string) (*auth.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) Refresh(_ context.Context, _ string) (*auth.LoginResponse, error) {
	return nil, errors.New("invalid token")
}

func (m *mockAuthPort) ValidateToken(_ context.Context, token string) (*user.Claims, error) {
	if claims, ok := m.tokens[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func (m *mockAuthPort) GetUser(_ context.Context, userID string) (*user.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockAuthPort) DeleteUser(_ context.Context, userID string) error {
	if _, ok := m.users[userID]; !ok {
		return auth.ErrUserNotFound
	}
	m.deleted = append(m.deleted, userID)
	return nil
}

func TestAuthMiddleware(t *testing.T) {
	mock := &mockAuthPort{tokens: map[string]*user.Claims{
		"valid-token": {UserID: "user-123", Email: "test@example.com", Role: user.RoleNeedy},
	}}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Authorization header is required"`,
		},
		{
			name:           "basic scheme",
			authHeader:     "Basic token123",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid authorization header format`,
		},
		{
			name:           "unknown token",
			authHeader:     "Bearer invalid-token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Invalid or expired token"`,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			expectedStatus: http.StatusOK,
			expectedBody:   `"user-123 NEEDY"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(mock))
			app.Get("/test", func(c *fiber.Ctx) error {
				actor, ok := actorFrom(c)
				if !ok {
					return c.SendStatus(http.StatusInternalServerError)
				}
				return c.JSON(actor.ID + " " + string(actor.Role))
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %s, want to contain %s", body, tt.expectedBody)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		role           user.Role
		allowed        []user.Role
		expectedStatus int
	}{
		{"listed role", user.RoleHelper, []user.Role{user.RoleHelper}, http.StatusOK},
		{"one of several", user.RoleAdmin, []user.Role{user.RoleNeedy, user.RoleAdmin}, http.StatusOK},
		{"unlisted role", user.RoleNeedy, []user.Role{user.RoleHelper}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals(UserContextKey, &user.Claims{UserID: "u1", Role: tt.role})
				return c.Next()
			})
			app.Get("/test", RequireRole(tt.allowed...), func(c *fiber.Ctx) error {
				return c.SendString("ok")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/test", RequireRole(user.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnauthorized)
	}
}
