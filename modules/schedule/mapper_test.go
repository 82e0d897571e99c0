package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/Dimaschel/FullStack/modules/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeDirectory resolves names from a fixed map.
type fakeDirectory map[string]string

func (d fakeDirectory) DisplayName(_ context.Context, userID string) (string, error) {
	name, ok := d[userID]
	if !ok {
		return "", domain.IdentityNotFound(userID)
	}
	return name, nil
}

func TestMapper_ToView(t *testing.T) {
	mapper := NewMapper(fakeDirectory{
		"needy-1":  "needy@example.com",
		"helper-1": "helper@example.com",
	})
	ctx := context.Background()

	rating := 4
	responder := "helper-1"
	s := &domain.Schedule{
		ID:          "s-1",
		Description: "fix fence",
		ScheduledAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Status:      domain.StatusCompleted,
		OwnerID:     "needy-1",
		ResponderID: &responder,
		Rating:      &rating,
	}

	v, err := mapper.ToView(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "needy@example.com", v.OwnerName)
	require.NotNil(t, v.ResponderName)
	assert.Equal(t, "helper@example.com", *v.ResponderName)
	assert.Equal(t, "COMPLETED", v.Status)
	require.NotNil(t, v.Rating)
	assert.Equal(t, 4, *v.Rating)

	// The view does not alias the schedule.
	*v.Rating = 1
	assert.Equal(t, 4, *s.Rating)

	s.ResponderID = nil
	v, err = mapper.ToView(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, v.ResponderID)
	assert.Nil(t, v.ResponderName)
}

func TestMapper_UnknownIdentity(t *testing.T) {
	mapper := NewMapper(fakeDirectory{"needy-1": "needy@example.com"})
	ctx := context.Background()

	_, err := mapper.ToView(ctx, &domain.Schedule{OwnerID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "ghost")

	responder := "vanished"
	_, err = mapper.ToView(ctx, &domain.Schedule{OwnerID: "needy-1", ResponderID: &responder})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type fakeUsers struct {
	users map[string]*user.User
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (*user.User, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func TestAuthDirectory(t *testing.T) {
	users := &fakeUsers{users: map[string]*user.User{
		"u1": {ID: "u1", Email: "one@example.com"},
	}}
	dir := NewAuthDirectory(users)
	ctx := context.Background()

	name, err := dir.DisplayName(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "one@example.com", name)

	_, err = dir.DisplayName(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users.err = errors.New("bus down")
	_, err = dir.DisplayName(ctx, "u1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// memoryCache is an in-process stand-in for the Redis cache.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		*dest.(*string) = v
	}
	return ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func TestCachedDirectory(t *testing.T) {
	users := &fakeUsers{
		users: map[string]*user.User{"u1": {ID: "u1", Email: "one@example.com"}},
		delay: 20 * time.Millisecond,
	}
	c := &memoryCache{data: map[string]string{}}
	dir := NewCachedDirectory(NewAuthDirectory(users), c)
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			name, err := dir.DisplayName(ctx, "u1")
			if err != nil {
				return err
			}
			if name != "one@example.com" {
				return errors.New("unexpected name " + name)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	// Concurrent misses share lookups instead of fanning out per caller.
	assert.Less(t, users.calls.Load(), int32(8))

	before := users.calls.Load()
	name, err := dir.DisplayName(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "one@example.com", name)
	assert.Equal(t, before, users.calls.Load(), "cached name should not hit auth")

	_, err = dir.DisplayName(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, cached := c.data["display-name:nobody"]
	assert.False(t, cached)
}
