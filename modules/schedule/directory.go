package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/Dimaschel/FullStack/modules/auth"
	"golang.org/x/sync/singleflight"
)

// userLookup is the part of auth.AuthPort the directory needs.
type userLookup interface {
	GetUser(ctx context.Context, userID string) (*user.User, error)
}

// authDirectory resolves display names through the auth module. A user's
// display name is their e-mail.
type authDirectory struct {
	users userLookup
}

// NewAuthDirectory creates a Directory backed by the auth module.
func NewAuthDirectory(users userLookup) Directory {
	return &authDirectory{users: users}
}

func (d *authDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	u, err := d.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return "", domain.IdentityNotFound(userID)
		}
		return "", fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}
	return u.Email, nil
}

// nameCache is the subset of cache.Cache used for display names.
type nameCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// cachedDirectory puts a cache-aside layer in front of another Directory.
// Concurrent misses for the same user share one upstream lookup.
type cachedDirectory struct {
	next  Directory
	cache nameCache
	group singleflight.Group
}

// NewCachedDirectory wraps next with c.
func NewCachedDirectory(next Directory, c nameCache) Directory {
	return &cachedDirectory{next: next, cache: c}
}

func (d *cachedDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	key := "display-name:" + userID

	var name string
	found, err := d.cache.Get(ctx, key, &name)
	if err != nil {
		log.Printf("[schedule] Cache error for user %s: %v", userID, err)
	}
	if found {
		return name, nil
	}

	v, err, _ := d.group.Do(key, func() (any, error) {
		name, err := d.next.DisplayName(ctx, userID)
		if err != nil {
			return "", err
		}
		if err := d.cache.Set(ctx, key, name); err != nil {
			log.Printf("[schedule] Failed to cache display name for user %s: %v", userID, err)
		}
		return name, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
