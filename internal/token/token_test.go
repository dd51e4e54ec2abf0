package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridia/authgate/internal/token"
)

const testSecret = "test-secret-at-least-long-enough"

func newService(t *testing.T, opts ...token.Option) *token.Service {
	t.Helper()
	svc, err := token.New(token.Config{Secret: testSecret}, opts...)
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()
		_, err := token.New(token.Config{})
		assert.ErrorIs(t, err, token.ErrMissingSecret)
	})

	t.Run("applies TTL defaults", func(t *testing.T) {
		t.Parallel()
		svc, err := token.New(token.Config{Secret: testSecret})
		require.NoError(t, err)

		signed, err := svc.IssueReset("ana@x.com")
		require.NoError(t, err)

		reset, err := svc.VerifyReset(signed)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), reset.ExpiresAt, time.Minute)
	})
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	signed, err := svc.IssueSession("identity-123", "ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	session, err := svc.VerifySession(signed)
	require.NoError(t, err)
	assert.Equal(t, "identity-123", session.IdentityID)
	assert.Equal(t, "ana@x.com", session.Email)
	assert.False(t, session.IssuedAt.IsZero())
	assert.True(t, session.ExpiresAt.After(session.IssuedAt))
}

func TestSessionWithoutEmail(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	signed, err := svc.IssueSession("identity-123", "")
	require.NoError(t, err)

	session, err := svc.VerifySession(signed)
	require.NoError(t, err)
	assert.Equal(t, "identity-123", session.IdentityID)
	assert.Empty(t, session.Email)
}

func TestIssueValidation(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	_, err := svc.IssueSession("", "ana@x.com")
	assert.ErrorIs(t, err, token.ErrMissingIdentity)

	_, err = svc.IssueReset("")
	assert.ErrorIs(t, err, token.ErrMissingEmail)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	// Issue with a clock two hours in the past so the reset token (1h TTL)
	// is already expired for the real-time verifier.
	past := time.Now().Add(-2 * time.Hour)
	issuer := newService(t, token.WithClock(func() time.Time { return past }))
	verifier := newService(t)

	signed, err := issuer.IssueReset("ana@x.com")
	require.NoError(t, err)

	_, err = verifier.VerifyReset(signed)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	other, err := token.New(token.Config{Secret: "a-completely-different-secret!!"})
	require.NoError(t, err)

	signed, err := svc.IssueSession("identity-123", "")
	require.NoError(t, err)

	_, err = other.VerifySession(signed)
	assert.ErrorIs(t, err, token.ErrTokenSignature)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	testCases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"broken base64", "aa!a.bb!b.cc!c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.VerifySession(tc.raw)
			assert.ErrorIs(t, err, token.ErrTokenMalformed)
		})
	}
}

func TestKindIsEnforced(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	t.Run("reset token is not a session", func(t *testing.T) {
		t.Parallel()
		signed, err := svc.IssueReset("ana@x.com")
		require.NoError(t, err)

		_, err = svc.VerifySession(signed)
		assert.ErrorIs(t, err, token.ErrWrongKind)
	})

	t.Run("session token is not a reset", func(t *testing.T) {
		t.Parallel()
		signed, err := svc.IssueSession("identity-123", "ana@x.com")
		require.NoError(t, err)

		_, err = svc.VerifyReset(signed)
		assert.ErrorIs(t, err, token.ErrWrongKind)
	})
}

func TestResetRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	signed, err := svc.IssueReset("ana@x.com")
	require.NoError(t, err)

	reset, err := svc.VerifyReset(signed)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", reset.Email)
}
