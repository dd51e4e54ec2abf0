package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the signing material and lifetimes for issued tokens.
// Rotating the secret invalidates every outstanding token.
type Config struct {
	Secret     string        `env:"TOKEN_SECRET,required"`
	SessionTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"720h"`
	ResetTTL   time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`
}

// Token kinds. Session and reset tokens share the signing secret, so each
// carries an explicit kind claim and verification refuses a token presented
// for the wrong purpose.
const (
	KindSession = "session"
	KindReset   = "reset"
)

// clock skew tolerated when validating exp/iat.
const leeway = 30 * time.Second

// Session is the decoded payload of a session token.
type Session struct {
	IdentityID string
	Email      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Reset is the decoded payload of a password-reset token.
type Reset struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type claims struct {
	Email string `json:"email,omitempty"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256-signed tokens. It is a pure function
// over the configured secret; no I/O, safe for concurrent use.
type Service struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	nowFn      func() time.Time
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithClock replaces the time source; used by tests to control expiry.
func WithClock(nowFn func() time.Time) Option {
	return func(s *Service) {
		if nowFn != nil {
			s.nowFn = nowFn
		}
	}
}

// New validates the configuration and returns a ready Service.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	s := &Service{
		secret:     []byte(cfg.Secret),
		sessionTTL: cfg.SessionTTL,
		resetTTL:   cfg.ResetTTL,
		nowFn:      time.Now,
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 720 * time.Hour
	}
	if s.resetTTL <= 0 {
		s.resetTTL = time.Hour
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueSession signs a session token for the identity. The email claim is
// optional and omitted when empty.
func (s *Service) IssueSession(identityID, email string) (string, error) {
	if identityID == "" {
		return "", ErrMissingIdentity
	}
	return s.sign(claims{
		Email: email,
		Kind:  KindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: identityID,
		},
	}, s.sessionTTL)
}

// IssueReset signs a single-purpose password-reset token for the email.
func (s *Service) IssueReset(email string) (string, error) {
	if email == "" {
		return "", ErrMissingEmail
	}
	return s.sign(claims{
		Email: email,
		Kind:  KindReset,
	}, s.resetTTL)
}

// VerifySession parses and validates a session token.
func (s *Service) VerifySession(raw string) (Session, error) {
	parsed, err := s.parse(raw, KindSession)
	if err != nil {
		return Session{}, err
	}
	if parsed.Subject == "" {
		return Session{}, ErrTokenMalformed
	}
	return Session{
		IdentityID: parsed.Subject,
		Email:      parsed.Email,
		IssuedAt:   parsed.IssuedAt.Time,
		ExpiresAt:  parsed.ExpiresAt.Time,
	}, nil
}

// VerifyReset parses and validates a password-reset token.
func (s *Service) VerifyReset(raw string) (Reset, error) {
	parsed, err := s.parse(raw, KindReset)
	if err != nil {
		return Reset{}, err
	}
	if parsed.Email == "" {
		return Reset{}, ErrTokenMalformed
	}
	return Reset{
		Email:     parsed.Email,
		IssuedAt:  parsed.IssuedAt.Time,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}

func (s *Service) sign(c claims, ttl time.Duration) (string, error) {
	now := s.nowFn()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", errors.Join(ErrSigning, err)
	}
	return signed, nil
}

func (s *Service) parse(raw, wantKind string) (claims, error) {
	if raw == "" {
		return claims{}, ErrTokenMalformed
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(s.nowFn),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return claims{}, mapJWTError(err)
	}

	if parsed.Kind != wantKind {
		return claims{}, ErrWrongKind
	}
	if parsed.IssuedAt == nil || parsed.ExpiresAt == nil {
		return claims{}, ErrTokenMalformed
	}
	return parsed, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
