package api

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veridia/authgate/internal/gateway"
	"github.com/veridia/authgate/internal/i18n"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/token"
)

const testFrontendOrigin = "https://app.example.com"

// testLogBuffer collects log output for assertions; safe for the handler
// goroutines httptest may spawn.
type testLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *testLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *testLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in gateway.RegisterInput) (gateway.Session, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(gateway.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in gateway.LoginInput) (gateway.Session, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(gateway.Session), args.Error(1)
}

func (m *MockAuthService) LoginSocial(ctx context.Context, in gateway.SocialLoginInput) (gateway.Session, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(gateway.Session), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, identityID string) (profile.Profile, error) {
	args := m.Called(ctx, identityID)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, identityID string, in gateway.UpdateProfileInput) (profile.Profile, error) {
	args := m.Called(ctx, identityID, in)
	return args.Get(0).(profile.Profile), args.Error(1)
}

func (m *MockAuthService) DeleteMe(ctx context.Context, identityID string) error {
	args := m.Called(ctx, identityID)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, in gateway.ForgotPasswordInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, in gateway.ResetPasswordInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// MockSessionVerifier is a mock implementation of SessionVerifier.
type MockSessionVerifier struct {
	mock.Mock
}

func (m *MockSessionVerifier) VerifySession(raw string) (token.Session, error) {
	args := m.Called(raw)
	return args.Get(0).(token.Session), args.Error(1)
}

type apiMocks struct {
	auth     *MockAuthService
	sessions *MockSessionVerifier
}

func (m *apiMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.auth.AssertExpectations(t)
	m.sessions.AssertExpectations(t)
}

// allowSession primes the verifier to accept the given bearer token.
func (m *apiMocks) allowSession(raw, identityID string) {
	m.sessions.On("VerifySession", raw).
		Return(token.Session{IdentityID: identityID, Email: identityID + "@example.com"}, nil)
}

func newTestRouter(t *testing.T, opts ...Option) (http.Handler, *apiMocks) {
	t.Helper()

	m := &apiMocks{
		auth:     &MockAuthService{},
		sessions: &MockSessionVerifier{},
	}

	catalog, err := i18n.New()
	require.NoError(t, err)

	handler, err := NewRouter(
		Config{Environment: "test", FrontendOrigin: testFrontendOrigin},
		Deps{
			Auth:     m.auth,
			Sessions: m.sessions,
			Catalog:  catalog,
			Debug: DebugInfo{
				Environment:               "test",
				IdentityProjectConfigured: true,
				EmailKeyConfigured:        false,
				Port:                      "8080",
			},
		},
		opts...,
	)
	require.NoError(t, err)

	return handler, m
}
