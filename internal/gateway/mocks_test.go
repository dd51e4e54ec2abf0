package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/token"
)

// MockIdentityProvider is a mock implementation of identity.Provider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password, displayName string) (identity.Account, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.Get(0).(identity.Account), args.Error(1)
}

func (m *MockIdentityProvider) VerifyPassword(ctx context.Context, email, password string) (identity.Account, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(identity.Account), args.Error(1)
}

func (m *MockIdentityProvider) LookupByEmail(ctx context.Context, email string) (identity.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(identity.Account), args.Error(1)
}

func (m *MockIdentityProvider) SetDisabled(ctx context.Context, id string, disabled bool) error {
	args := m.Called(ctx, id, disabled)
	return args.Error(0)
}

func (m *MockIdentityProvider) SetPassword(ctx context.Context, id, newPassword string) error {
	args := m.Called(ctx, id, newPassword)
	return args.Error(0)
}

// MockProfileStore is a mock implementation of profile.Store.
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Create(ctx context.Context, p profile.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileStore) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *MockProfileStore) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *MockProfileStore) Update(ctx context.Context, id string, upd profile.Update) (profile.Profile, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *MockProfileStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenService is a mock implementation of TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueSession(identityID, email string) (string, error) {
	args := m.Called(identityID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssueReset(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyReset(raw string) (token.Reset, error) {
	args := m.Called(raw)
	return args.Get(0).(token.Reset), args.Error(1)
}

// MockRecoverySender is a mock implementation of RecoverySender.
type MockRecoverySender struct {
	mock.Mock
}

func (m *MockRecoverySender) Send(ctx context.Context, to, resetToken string) error {
	args := m.Called(ctx, to, resetToken)
	return args.Error(0)
}

// MockSocialRegistry is a mock implementation of SocialRegistry.
type MockSocialRegistry struct {
	mock.Mock
}

func (m *MockSocialRegistry) Verify(ctx context.Context, provider, tok string) (identity.ExternalIdentity, error) {
	args := m.Called(ctx, provider, tok)
	return args.Get(0).(identity.ExternalIdentity), args.Error(1)
}

type serviceMocks struct {
	identity *MockIdentityProvider
	profiles *MockProfileStore
	tokens   *MockTokenService
	recovery *MockRecoverySender
	socials  *MockSocialRegistry
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.identity.AssertExpectations(t)
	m.profiles.AssertExpectations(t)
	m.tokens.AssertExpectations(t)
	m.recovery.AssertExpectations(t)
	m.socials.AssertExpectations(t)
}

func newTestService(t *testing.T, opts ...Option) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		identity: &MockIdentityProvider{},
		profiles: &MockProfileStore{},
		tokens:   &MockTokenService{},
		recovery: &MockRecoverySender{},
		socials:  &MockSocialRegistry{},
	}

	svc, err := New(Dependencies{
		Identity: m.identity,
		Profiles: m.profiles,
		Tokens:   m.tokens,
		Recovery: m.recovery,
		Socials:  m.socials,
	}, opts...)
	require.NoError(t, err)

	return svc, m
}
