package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/logger"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/token"
)

// Profile provenance tags. Social profiles carry the claimed provider tag
// instead.
const ProviderEmail = "email"

// defaultAge is assigned to lazily created profiles, which have no age of
// their own to draw on.
const defaultAge = 25

// minAge is the registration floor.
const minAge = 18

// TokenService is the slice of the token service the gateway drives.
// Session verification belongs to the HTTP layer, not here.
type TokenService interface {
	IssueSession(identityID, email string) (string, error)
	IssueReset(email string) (string, error)
	VerifyReset(raw string) (token.Reset, error)
}

// SocialRegistry verifies provider-issued credential tokens.
type SocialRegistry interface {
	Verify(ctx context.Context, provider, tok string) (identity.ExternalIdentity, error)
}

// RecoverySender delivers the password-recovery email.
type RecoverySender interface {
	Send(ctx context.Context, to, resetToken string) error
}

// Dependencies carries the collaborators a Service orchestrates. All fields
// are required.
type Dependencies struct {
	Identity identity.Provider
	Profiles profile.Store
	Tokens   TokenService
	Recovery RecoverySender
	Socials  SocialRegistry
}

// Service is the gateway between the HTTP layer and the external
// collaborators. It owns normalization, validation, error mapping, and the
// order of external calls; it holds no state of its own.
type Service struct {
	identity identity.Provider
	profiles profile.Store
	tokens   TokenService
	recovery RecoverySender
	socials  SocialRegistry
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithLogger attaches a logger for best-effort failure paths.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l.With(logger.Component("gateway"))
		}
	}
}

// WithClock replaces the time source; used by tests for stable CreatedAt.
func WithClock(nowFn func() time.Time) Option {
	return func(s *Service) {
		if nowFn != nil {
			s.now = nowFn
		}
	}
}

// New validates the dependency set and returns a ready Service.
func New(deps Dependencies, opts ...Option) (*Service, error) {
	switch {
	case deps.Identity == nil:
		return nil, errors.New("gateway: identity provider is required")
	case deps.Profiles == nil:
		return nil, errors.New("gateway: profile store is required")
	case deps.Tokens == nil:
		return nil, errors.New("gateway: token service is required")
	case deps.Recovery == nil:
		return nil, errors.New("gateway: recovery sender is required")
	case deps.Socials == nil:
		return nil, errors.New("gateway: social registry is required")
	}

	s := &Service{
		identity: deps.Identity,
		profiles: deps.Profiles,
		tokens:   deps.Tokens,
		recovery: deps.Recovery,
		socials:  deps.Socials,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Session is the result of a completed authentication: the signed token and
// the profile it belongs to.
type Session struct {
	Token   string
	Profile profile.Profile
}

// ensureProfile returns the stored profile for the identity, creating one on
// first sight. Lazily created profiles take their name from the display
// name, the email local part as a last resort, and the default age.
func (s *Service) ensureProfile(ctx context.Context, id, email, displayName, provider string) (profile.Profile, error) {
	prof, err := s.profiles.GetByID(ctx, id)
	if err == nil {
		return prof, nil
	}
	if !errors.Is(err, profile.ErrNotFound) {
		return profile.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	name, lastname := splitDisplayName(displayName)
	if name == "" {
		name = emailLocalPart(email)
	}

	prof = profile.Profile{
		ID:        id,
		Name:      name,
		Lastname:  lastname,
		Email:     email,
		Age:       defaultAge,
		Provider:  provider,
		CreatedAt: s.now(),
	}
	if err := s.profiles.Create(ctx, prof); err != nil {
		if errors.Is(err, profile.ErrAlreadyExists) {
			// Lost a race with a concurrent first login; the stored
			// document wins.
			return s.profiles.GetByID(ctx, id)
		}
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return prof, nil
}

func splitDisplayName(displayName string) (name, lastname string) {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
