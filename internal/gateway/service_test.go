package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veridia/authgate/internal/profile"
)

func TestNew_RequiresAllDependencies(t *testing.T) {
	t.Parallel()

	full := func() Dependencies {
		return Dependencies{
			Identity: &MockIdentityProvider{},
			Profiles: &MockProfileStore{},
			Tokens:   &MockTokenService{},
			Recovery: &MockRecoverySender{},
			Socials:  &MockSocialRegistry{},
		}
	}

	tests := []struct {
		name   string
		mutate func(d *Dependencies)
	}{
		{"missing identity", func(d *Dependencies) { d.Identity = nil }},
		{"missing profiles", func(d *Dependencies) { d.Profiles = nil }},
		{"missing tokens", func(d *Dependencies) { d.Tokens = nil }},
		{"missing recovery", func(d *Dependencies) { d.Recovery = nil }},
		{"missing socials", func(d *Dependencies) { d.Socials = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps := full()
			tt.mutate(&deps)

			_, err := New(deps)
			assert.Error(t, err)
		})
	}

	svc, err := New(full())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestSplitDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		display  string
		name     string
		lastname string
	}{
		{"Ana Torres", "Ana", "Torres"},
		{"Ana María Torres", "Ana", "María Torres"},
		{"Ana", "Ana", ""},
		{"  Ana   Torres  ", "Ana", "Torres"},
		{"", "", ""},
	}

	for _, tt := range tests {
		name, lastname := splitDisplayName(tt.display)
		assert.Equal(t, tt.name, name, "display %q", tt.display)
		assert.Equal(t, tt.lastname, lastname, "display %q", tt.display)
	}
}

func TestEmailLocalPart(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ana", emailLocalPart("ana@example.com"))
	assert.Equal(t, "no-at-sign", emailLocalPart("no-at-sign"))
	assert.Equal(t, "@leading", emailLocalPart("@leading"))
}

func TestEnsureProfile_CreateRaceFallsBackToStored(t *testing.T) {
	t.Parallel()

	svc, m := newTestService(t)

	stored := profile.Profile{ID: "uid-1", Name: "Ana", Email: "ana@example.com", Age: 30}

	m.profiles.On("GetByID", mock.Anything, "uid-1").Return(profile.Profile{}, profile.ErrNotFound).Once()
	m.profiles.On("Create", mock.Anything, mock.Anything).Return(profile.ErrAlreadyExists)
	m.profiles.On("GetByID", mock.Anything, "uid-1").Return(stored, nil).Once()

	prof, err := svc.ensureProfile(context.Background(), "uid-1", "ana@example.com", "Ana Torres", ProviderEmail)
	require.NoError(t, err)
	assert.Equal(t, stored, prof)

	m.assertExpectations(t)
}
