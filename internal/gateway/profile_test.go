package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/profile"
)

func TestService_GetProfile(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t)

	stored := profile.Profile{ID: "uid-1", Name: "Ana", Email: "ana@example.com"}
	m.profiles.On("GetByID", mock.Anything, "uid-1").Return(stored, nil)

	prof, err := svc.GetProfile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, stored, prof)
}

func TestService_GetProfile_Missing(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t)

	m.profiles.On("GetByID", mock.Anything, "uid-1").Return(profile.Profile{}, profile.ErrNotFound)

	_, err := svc.GetProfile(context.Background(), "uid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t)

	updated := profile.Profile{ID: "uid-1", Name: "Nuevo", Lastname: "Torres", Email: "nueva@example.com", Age: 31}
	m.profiles.On("Update", mock.Anything, "uid-1", mock.MatchedBy(func(u profile.Update) bool {
		return u.Name != nil && *u.Name == "Nuevo" &&
			u.Lastname != nil && *u.Lastname == "" &&
			u.Email != nil && *u.Email == "nueva@example.com" &&
			u.Age != nil && *u.Age == 31
	})).Return(updated, nil)

	prof, err := svc.UpdateProfile(context.Background(), "uid-1", UpdateProfileInput{
		Name:  "  Nuevo ",
		Email: " NUEVA@example.com",
		Age:   31,
	})
	require.NoError(t, err)
	assert.Equal(t, updated, prof)

	m.assertExpectations(t)
}

func TestService_UpdateProfile_Missing(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t)

	m.profiles.On("Update", mock.Anything, "uid-1", mock.Anything).
		Return(profile.Profile{}, profile.ErrNotFound)

	_, err := svc.UpdateProfile(context.Background(), "uid-1", UpdateProfileInput{Name: "Nuevo"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteMe(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t)

	m.identity.On("SetDisabled", mock.Anything, "uid-1", true).Return(nil)
	m.profiles.On("Delete", mock.Anything, "uid-1").Return(nil)

	require.NoError(t, svc.DeleteMe(context.Background(), "uid-1"))

	m.assertExpectations(t)
}

func TestService_DeleteMe_ToleratesMissingPieces(t *testing.T) {
	t.Parallel()

	t.Run("no identity account", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestService(t)

		// Social identities have no provider account to disable.
		m.identity.On("SetDisabled", mock.Anything, "ext-9", true).Return(identity.ErrNotFound)
		m.profiles.On("Delete", mock.Anything, "ext-9").Return(nil)

		assert.NoError(t, svc.DeleteMe(context.Background(), "ext-9"))
	})

	t.Run("profile already gone", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestService(t)

		m.identity.On("SetDisabled", mock.Anything, "uid-1", true).Return(nil)
		m.profiles.On("Delete", mock.Anything, "uid-1").Return(profile.ErrNotFound)

		assert.NoError(t, svc.DeleteMe(context.Background(), "uid-1"))
	})
}

func TestService_DeleteMe_Failures(t *testing.T) {
	t.Parallel()

	t.Run("disable fails", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestService(t)

		m.identity.On("SetDisabled", mock.Anything, "uid-1", true).Return(errors.New("provider down"))

		assert.Error(t, svc.DeleteMe(context.Background(), "uid-1"))
	})

	t.Run("delete fails", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestService(t)

		m.identity.On("SetDisabled", mock.Anything, "uid-1", true).Return(nil)
		m.profiles.On("Delete", mock.Anything, "uid-1").Return(errors.New("store down"))

		assert.Error(t, svc.DeleteMe(context.Background(), "uid-1"))
	})
}
