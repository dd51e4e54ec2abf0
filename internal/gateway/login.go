package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/sanitizer"
	"github.com/veridia/authgate/internal/validator"
)

// LoginInput is the password sign-in request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SocialLoginInput is the social sign-in request body. Token is the
// provider-issued credential: an OIDC ID token or an opaque access token,
// depending on the provider.
type SocialLoginInput struct {
	Provider string `json:"provider"`
	Token    string `json:"idToken"`
}

// Login verifies the password with the identity provider and signs a
// session. Unknown email and wrong password collapse into ErrUnauthorized;
// only a disabled account is distinguishable.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.RequiredString("password", in.Password),
	); err != nil {
		return Session{}, err
	}

	account, err := s.identity.VerifyPassword(ctx, email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrAccountDisabled):
			return Session{}, ErrDisabled
		case errors.Is(err, identity.ErrMethodDisabled):
			return Session{}, ErrMethodDisabled
		case errors.Is(err, identity.ErrNotFound),
			errors.Is(err, identity.ErrBadCredentials),
			errors.Is(err, identity.ErrInvalidInput):
			return Session{}, ErrUnauthorized
		default:
			return Session{}, fmt.Errorf("verify password: %w", err)
		}
	}

	prof, err := s.ensureProfile(ctx, account.ID, account.Email, account.DisplayName, ProviderEmail)
	if err != nil {
		return Session{}, err
	}

	tok, err := s.tokens.IssueSession(account.ID, account.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}

	return Session{Token: tok, Profile: prof}, nil
}

// LoginSocial verifies a provider-issued token and signs a session for the
// external identity. The profile is created on first sight with the claimed
// provider tag.
func (s *Service) LoginSocial(ctx context.Context, in SocialLoginInput) (Session, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))

	if err := validator.Apply(
		validator.RequiredString("provider", provider),
		validator.RequiredString("token", in.Token),
	); err != nil {
		return Session{}, err
	}

	ext, err := s.socials.Verify(ctx, provider, in.Token)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUnknownProvider):
			return Session{}, ErrUnknownProvider
		case errors.Is(err, identity.ErrInvalidExternalToken):
			return Session{}, ErrExternalToken
		default:
			return Session{}, fmt.Errorf("verify external token: %w", err)
		}
	}

	prof, err := s.ensureProfile(ctx, ext.ID, ext.Email, ext.Name, provider)
	if err != nil {
		return Session{}, err
	}

	tok, err := s.tokens.IssueSession(ext.ID, ext.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}

	return Session{Token: tok, Profile: prof}, nil
}
