package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidNumber is returned when the phone number is malformed.
	ErrInvalidNumber = errors.New("invalid phone number")
	// ErrInvalidRole is returned for unknown or disallowed roles.
	ErrInvalidRole = errors.New("role must be NEEDY or HELPER")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

var numberPattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Email    string
	Number   string
	Role     string
	Password string
}

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	// allowAdmin lets Register create ADMIN accounts.
	allowAdmin bool
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	return s.register(ctx, in, s.allowAdmin)
}

func (s *AuthService) register(ctx context.Context, in RegisterInput, allowAdmin bool) (*user.User, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	number := strings.ReplaceAll(strings.TrimSpace(in.Number), " ", "")
	if !numberPattern.MatchString(number) {
		return nil, ErrInvalidNumber
	}

	role, ok := user.ParseRole(in.Role)
	if !ok || (role == user.RoleAdmin && !allowAdmin) {
		return nil, ErrInvalidRole
	}

	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(in.Password) > 72 {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}
	exists, err = s.repo.NumberExists(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to check number existence: %w", err)
	}
	if exists {
		return nil, ErrNumberTaken
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New().String(),
		Email:        email,
		Number:       number,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureAdmin creates an ADMIN account for email unless one exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, number, password string) (*user.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	return s.register(ctx, RegisterInput{
		Email:    email,
		Number:   number,
		Role:     string(user.RoleAdmin),
		Password: password,
	}, true)
}

// Login authenticates a user and returns tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.TokenPair, error) {
	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(u)
}

// RefreshTokens exchanges a refresh token for a new token pair. The role
// is re-read from storage.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*user.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.generateTokenPair(u)
}

// ValidateToken validates an access token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*user.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	return &user.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*user.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// DeleteUser removes a user by ID.
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func (s *AuthService) generateTokenPair(u *user.User) (*user.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &user.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
		Role:         u.Role,
	}, nil
}
