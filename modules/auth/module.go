package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/Dimaschel/FullStack/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// AuthModule provides account and token services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	dbCfg   storage.Config
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule configured from AUTH_DB_* variables.
func NewModule() *AuthModule {
	return &AuthModule{
		dbCfg: storage.ConfigFromEnv("AUTH", "auth.db"),
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start opens the user database and builds the service.
func (m *AuthModule) Start(ctx context.Context) error {
	db, err := storage.Open(m.dbCfg, &user.User{})
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	m.db = db

	m.service = NewAuthService(NewUserRepository(db), NewPasswordHasher(), NewJWTManager(JWTConfigFromEnv()))
	m.service.allowAdmin = os.Getenv("AUTH_ALLOW_ADMIN_SIGNUP") == "true"

	if email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"); email != "" && password != "" {
		number := os.Getenv("ADMIN_NUMBER")
		if number == "" {
			number = "+10000000000"
		}
		admin, err := m.service.EnsureAdmin(ctx, email, number, password)
		if err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		log.Printf("[auth] Admin account ready: %s", admin.Email)
	}

	log.Printf("[auth] Module started (database: %s)", m.dbCfg.Driver)
	return nil
}

// Stop closes the database.
func (m *AuthModule) Stop(_ context.Context) error {
	if err := storage.Close(m.db); err != nil {
		log.Printf("[auth] Error closing database: %v", err)
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.dbCfg.Driver,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "register", json.Unmarshal, json.Marshal, m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "refresh-token", json.Unmarshal, json.Marshal, m.handleRefresh,
	); err != nil {
		return fmt.Errorf("failed to register refresh-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-user", json.Unmarshal, json.Marshal, m.handleDeleteUser,
	); err != nil {
		return fmt.Errorf("failed to register delete-user service: %w", err)
	}

	log.Printf("[auth] Registered services: register, login, refresh-token, validate-token, get-user, delete-user")
	return nil
}

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	u, err := m.service.Register(ctx, RegisterInput{
		Email:    req.Email,
		Number:   req.Number,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{
		ID:        u.ID,
		Email:     u.Email,
		Number:    u.Number,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}, nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	tokens, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return toLoginResponse(tokens), nil
}

func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (LoginResponse, error) {
	tokens, err := m.service.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	return toLoginResponse(tokens), nil
}

func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		// Validation failures are a normal reply, not a service error.
		return ValidateTokenResponse{Valid: false, Error: errMsg}, nil
	}

	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   string(claims.Role),
	}, nil
}

func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	u, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return GetUserResponse{Found: false}, nil
		}
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		Found:     true,
		ID:        u.ID,
		Email:     u.Email,
		Number:    u.Number,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}, nil
}

func (m *AuthModule) handleDeleteUser(ctx context.Context, req DeleteUserRequest, _ *mono.Msg) (DeleteUserResponse, error) {
	if err := m.service.DeleteUser(ctx, req.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return DeleteUserResponse{Deleted: false}, nil
		}
		return DeleteUserResponse{}, err
	}
	log.Printf("[auth] Deleted user %s", req.UserID)
	return DeleteUserResponse{Deleted: true}, nil
}

func toLoginResponse(tokens *user.TokenPair) LoginResponse {
	return LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
		Role:         string(tokens.Role),
	}
}
