package profile

import (
	"context"
	"testing"

	domain "github.com/Dimaschel/FullStack/domain/profile"
	"github.com/Dimaschel/FullStack/events"
	"github.com/Dimaschel/FullStack/modules/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestModule(t *testing.T) *ProfileModule {
	t.Helper()

	db, err := storage.Open(storage.Config{Driver: storage.DriverSQLite, DSN: ":memory:"}, &domain.Profile{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close(db) })

	return &ProfileModule{db: db, repo: NewRepository(db)}
}

func TestCreateProfile(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	resp, err := m.createProfile(ctx, CreateProfileRequest{UserID: "u1", Name: " Anna ", Age: 71}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "Anna", resp.Name)
	assert.Equal(t, 0, resp.HelpCount)

	_, err = m.createProfile(ctx, CreateProfileRequest{UserID: "u1", Name: "Anna", Age: 71}, nil)
	assert.ErrorIs(t, err, ErrExists)
}

func TestCreateProfile_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateProfileRequest
		want error
	}{
		{name: "blank name", req: CreateProfileRequest{UserID: "u1", Name: "  ", Age: 30}, want: ErrInvalidName},
		{name: "negative age", req: CreateProfileRequest{UserID: "u1", Name: "Bo", Age: -1}, want: ErrInvalidAge},
		{name: "age too high", req: CreateProfileRequest{UserID: "u1", Name: "Bo", Age: 151}, want: ErrInvalidAge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestModule(t)
			_, err := m.createProfile(context.Background(), tt.req, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetAndListProfiles(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	got, err := m.getProfile(ctx, GetProfileRequest{UserID: "u1"}, nil)
	require.NoError(t, err)
	assert.False(t, got.Found)

	for _, id := range []string{"u1", "u2"} {
		_, err := m.createProfile(ctx, CreateProfileRequest{UserID: id, Name: "name " + id, Age: 40}, nil)
		require.NoError(t, err)
	}

	got, err = m.getProfile(ctx, GetProfileRequest{UserID: "u2"}, nil)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Equal(t, "name u2", got.Name)

	list, err := m.listProfiles(ctx, ListProfilesRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Profiles, 2)

	del, err := m.deleteProfile(ctx, DeleteProfileRequest{UserID: "u2"}, nil)
	require.NoError(t, err)
	assert.True(t, del.Deleted)
	del, err = m.deleteProfile(ctx, DeleteProfileRequest{UserID: "u2"}, nil)
	require.NoError(t, err)
	assert.False(t, del.Deleted)
}

func TestIncrementHelpCount(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	resp, err := m.incrementHelpCount(ctx, IncrementHelpCountRequest{UserID: "helper-1"}, nil)
	require.NoError(t, err)
	assert.False(t, resp.Found)

	_, err = m.createProfile(ctx, CreateProfileRequest{UserID: "helper-1", Name: "Hal", Age: 25}, nil)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		resp, err := m.incrementHelpCount(ctx, IncrementHelpCountRequest{UserID: "helper-1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, i, resp.HelpCount)
	}
}

func TestHandleStatusChanged(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	_, err := m.createProfile(ctx, CreateProfileRequest{UserID: "helper-1", Name: "Hal", Age: 25}, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		event events.ScheduleStatusChangedEvent
		want  int
	}{
		{
			name:  "completed with responder counts",
			event: events.ScheduleStatusChangedEvent{ScheduleID: "s1", ResponderID: "helper-1", From: "IN_PROGRESS", To: "COMPLETED"},
			want:  1,
		},
		{
			name:  "completed again does not count",
			event: events.ScheduleStatusChangedEvent{ScheduleID: "s1", ResponderID: "helper-1", From: "COMPLETED", To: "COMPLETED"},
			want:  1,
		},
		{
			name:  "other status ignored",
			event: events.ScheduleStatusChangedEvent{ScheduleID: "s2", ResponderID: "helper-1", From: "OPEN", To: "IN_PROGRESS"},
			want:  1,
		},
		{
			name:  "completed without responder ignored",
			event: events.ScheduleStatusChangedEvent{ScheduleID: "s3", From: "OPEN", To: "COMPLETED"},
			want:  1,
		},
		{
			name:  "helper without profile skipped",
			event: events.ScheduleStatusChangedEvent{ScheduleID: "s4", ResponderID: "helper-9", From: "OPEN", To: "COMPLETED"},
			want:  1,
		},
		{
			name:  "second completion counts",
			event: events.ScheduleStatusChangedEvent{ScheduleID: "s5", ResponderID: "helper-1", From: "OPEN", To: "COMPLETED"},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, m.handleStatusChanged(ctx, tt.event, nil))

			p, err := m.repo.FindByUserID(ctx, "helper-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.HelpCount)
		})
	}
}
