package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/logger"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/sanitizer"
	"github.com/veridia/authgate/internal/validator"
)

// RegisterInput is the registration request body.
type RegisterInput struct {
	Name            string  `json:"name"`
	Lastname        string  `json:"lastname"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword"`
	Age             FlexInt `json:"age"`
}

// Register provisions an identity account, stores the profile, and signs the
// first session. The identity provider owns email uniqueness; a duplicate
// surfaces as ErrDuplicateEmail regardless of profile state.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	name := sanitizer.NormalizeName(in.Name)
	lastname := sanitizer.NormalizeName(in.Lastname)
	email := sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.RequiredString("name", name),
		validator.RequiredString("lastname", lastname),
		validator.ValidEmail("email", email),
		validator.RequiredString("password", in.Password),
		validator.MatchString("confirmPassword", in.ConfirmPassword, in.Password),
		validator.MinInt("age", in.Age.Int(), minAge),
	); err != nil {
		return Session{}, err
	}

	displayName := strings.TrimSpace(name + " " + lastname)
	account, err := s.identity.CreateAccount(ctx, email, in.Password, displayName)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrDuplicateEmail):
			return Session{}, ErrDuplicateEmail
		case errors.Is(err, identity.ErrInvalidInput):
			return Session{}, ErrInvalidInput
		default:
			return Session{}, fmt.Errorf("create account: %w", err)
		}
	}

	prof := profile.Profile{
		ID:        account.ID,
		Name:      name,
		Lastname:  lastname,
		Email:     email,
		Age:       in.Age.Int(),
		Provider:  ProviderEmail,
		CreatedAt: s.now(),
	}
	if err := s.profiles.Create(ctx, prof); err != nil {
		// The account exists but its profile does not; disable the account
		// so the half-registered email cannot sign in.
		if dErr := s.identity.SetDisabled(ctx, account.ID, true); dErr != nil {
			s.logger.ErrorContext(ctx, "failed to disable account after profile create failure",
				logger.IdentityID(account.ID),
				slog.String("email", sanitizer.MaskEmail(email)),
				logger.Error(dErr),
			)
		}
		return Session{}, fmt.Errorf("create profile: %w", err)
	}

	tok, err := s.tokens.IssueSession(account.ID, email)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}

	return Session{Token: tok, Profile: prof}, nil
}
