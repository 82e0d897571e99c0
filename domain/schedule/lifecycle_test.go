package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner   = Actor{ID: "needy-1", Role: user.RoleNeedy}
	helper  = Actor{ID: "helper-1", Role: user.RoleHelper}
	helper2 = Actor{ID: "helper-2", Role: user.RoleHelper}
)

func newOpen(t *testing.T) *Schedule {
	t.Helper()
	s, err := New(owner, "fix fence", time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	s.ID = "sched-1"
	return s
}

func strPtr(s string) *string { return &s }

func TestNew(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		owner       Actor
		description string
		at          time.Time
		wantErr     error
	}{
		{name: "valid", owner: owner, description: "fix fence", at: at},
		{name: "blank description", owner: owner, description: "   ", at: at, wantErr: ErrValidation},
		{name: "zero time", owner: owner, description: "fix fence", wantErr: ErrValidation},
		{name: "missing owner", description: "fix fence", at: at, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.owner, tt.description, tt.at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusOpen, s.Status)
			assert.Nil(t, s.ResponderID)
			assert.Nil(t, s.Rating)
			assert.Equal(t, owner.ID, s.OwnerID)
		})
	}
}

func TestClaim(t *testing.T) {
	t.Run("open schedule", func(t *testing.T) {
		s := newOpen(t)
		require.NoError(t, s.Claim(helper))
		assert.Equal(t, StatusInProgress, s.Status)
		require.NotNil(t, s.ResponderID)
		assert.Equal(t, helper.ID, *s.ResponderID)
	})

	for _, st := range []Status{StatusInProgress, StatusCompleted} {
		t.Run("rejected in "+string(st), func(t *testing.T) {
			for _, a := range []Actor{owner, helper, helper2} {
				s := newOpen(t)
				s.Status = st
				err := s.Claim(a)
				assert.ErrorIs(t, err, ErrInvalidState)
			}
		})
	}

	t.Run("same responder on reopened schedule", func(t *testing.T) {
		s := newOpen(t)
		s.ResponderID = strPtr(helper.ID)
		err := s.Claim(helper)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, StatusOpen, s.Status)
	})
}

func TestRelease(t *testing.T) {
	t.Run("responder releases", func(t *testing.T) {
		s := newOpen(t)
		require.NoError(t, s.Claim(helper))
		require.NoError(t, s.Release(helper))
		assert.Equal(t, StatusOpen, s.Status)
		assert.Nil(t, s.ResponderID)
	})

	t.Run("non responder", func(t *testing.T) {
		s := newOpen(t)
		require.NoError(t, s.Claim(helper))
		for _, a := range []Actor{owner, helper2} {
			assert.ErrorIs(t, s.Release(a), ErrForbidden)
		}
		assert.Equal(t, StatusInProgress, s.Status)
	})

	t.Run("unclaimed", func(t *testing.T) {
		s := newOpen(t)
		assert.ErrorIs(t, s.Release(helper), ErrForbidden)
	})

	t.Run("completed", func(t *testing.T) {
		s := newOpen(t)
		require.NoError(t, s.Claim(helper))
		s.Status = StatusCompleted
		assert.ErrorIs(t, s.Release(helper), ErrInvalidState)
		require.NotNil(t, s.ResponderID)
	})
}

func TestRate(t *testing.T) {
	for _, st := range []Status{StatusOpen, StatusInProgress} {
		for v := MinRating; v <= MaxRating; v++ {
			s := newOpen(t)
			s.Status = st
			assert.ErrorIs(t, s.Rate(owner, v, Policy{}), ErrInvalidState, "status %s value %d", st, v)
			assert.Nil(t, s.Rating)
		}
	}

	tests := []struct {
		value   int
		wantErr error
	}{
		{value: 0, wantErr: ErrValidation},
		{value: 6, wantErr: ErrValidation},
		{value: -1, wantErr: ErrValidation},
		{value: 1},
		{value: 5},
	}
	for _, tt := range tests {
		s := newOpen(t)
		s.Status = StatusCompleted
		err := s.Rate(owner, tt.value, Policy{})
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "value %d", tt.value)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.value, *s.Rating)
	}
}

func TestRate_Policy(t *testing.T) {
	s := newOpen(t)
	s.Status = StatusCompleted

	require.NoError(t, s.Rate(helper, 4, Policy{}))
	require.NoError(t, s.Rate(helper, 1, Policy{}))
	assert.Equal(t, 1, *s.Rating)

	assert.ErrorIs(t, s.Rate(helper, 2, Policy{OwnerOnlyRating: true}), ErrForbidden)
	assert.ErrorIs(t, s.Rate(owner, 2, Policy{RateOnce: true}), ErrInvalidState)
	assert.Equal(t, 1, *s.Rating)
}

func TestSetStatus(t *testing.T) {
	s := newOpen(t)
	require.NoError(t, s.SetStatus("completed"))
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Nil(t, s.ResponderID)

	require.NoError(t, s.SetStatus(StatusOpen))
	assert.Equal(t, StatusOpen, s.Status)

	assert.ErrorIs(t, s.SetStatus("CANCELLED"), ErrValidation)
	assert.Equal(t, StatusOpen, s.Status)
}

func TestRescheduleAndDelete(t *testing.T) {
	s := newOpen(t)
	later := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, s.Reschedule(helper, later), ErrForbidden)
	assert.ErrorIs(t, s.Reschedule(owner, time.Time{}), ErrValidation)
	require.NoError(t, s.Reschedule(owner, later))
	assert.True(t, s.ScheduledAt.Equal(later))

	assert.ErrorIs(t, s.CheckDelete(helper, Policy{}), ErrForbidden)
	assert.NoError(t, s.CheckDelete(owner, Policy{}))

	s.Status = StatusCompleted
	assert.NoError(t, s.CheckDelete(owner, Policy{}))
	assert.ErrorIs(t, s.CheckDelete(owner, Policy{ProtectCompleted: true}), ErrInvalidState)
}

func TestErrorCodes(t *testing.T) {
	kinds := []error{ErrNotFound, ErrForbidden, ErrInvalidState, ErrValidation, ErrConflict}
	for _, kind := range kinds {
		orig := &Error{Kind: kind, Msg: "schedule 42"}
		rebuilt := FromCode(Code(orig), orig.Error())
		assert.ErrorIs(t, rebuilt, kind)
		assert.Equal(t, orig.Error(), rebuilt.Error())
	}

	assert.Equal(t, CodeInternal, Code(errors.New("disk on fire")))
	assert.Equal(t, "", Code(nil))
	assert.NoError(t, FromCode("", ""))
	assert.Equal(t, "forbidden", FromCode(CodeForbidden, "forbidden").Error())
}
