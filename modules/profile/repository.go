package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/profile"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a user has no profile.
	ErrNotFound = errors.New("profile not found")
	// ErrExists is returned when a user already has a profile.
	ErrExists = errors.New("profile already exists for this user")
)

// Repository provides access to profile storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new profile repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new profile.
func (r *Repository) Create(ctx context.Context, p *domain.Profile) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("user_id = ?", p.UserID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}
	if count > 0 {
		return ErrExists
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByUserID retrieves the profile of a user.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &p, nil
}

// FindAll retrieves all profiles.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	if err := r.db.WithContext(ctx).Order("created_at").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	return profiles, nil
}

// IncrementHelpCount adds one to the user's help counter in a single
// UPDATE and returns the updated profile.
func (r *Repository) IncrementHelpCount(ctx context.Context, userID string) (*domain.Profile, error) {
	result := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"help_count": gorm.Expr("help_count + ?", 1),
			"updated_at": time.Now(),
		})
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to increment help count: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByUserID(ctx, userID)
}

// DeleteByUserID removes a user's profile.
func (r *Repository) DeleteByUserID(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Profile{}, "user_id = ?", userID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
