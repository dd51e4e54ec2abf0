package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/logger"
	"github.com/veridia/authgate/internal/profile"
	"github.com/veridia/authgate/internal/sanitizer"
)

// UpdateProfileInput is the partial-update request body. The update contract
// is lenient: absent and zero-valued fields are skipped, nothing is
// rejected, and age is not re-checked against the registration floor.
type UpdateProfileInput struct {
	Name     string  `json:"name"`
	Lastname string  `json:"lastname"`
	Email    string  `json:"email"`
	Age      FlexInt `json:"age"`
}

// GetProfile returns the profile of the authenticated identity.
func (s *Service) GetProfile(ctx context.Context, identityID string) (profile.Profile, error) {
	prof, err := s.profiles.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return prof, nil
}

// UpdateProfile applies the provided fields and returns the stored document.
// Email changes touch only the profile record, never the identity account.
func (s *Service) UpdateProfile(ctx context.Context, identityID string, in UpdateProfileInput) (profile.Profile, error) {
	name := sanitizer.NormalizeName(in.Name)
	lastname := sanitizer.NormalizeName(in.Lastname)
	email := sanitizer.NormalizeEmail(in.Email)
	age := in.Age.Int()

	prof, err := s.profiles.Update(ctx, identityID, profile.Update{
		Name:     &name,
		Lastname: &lastname,
		Email:    &email,
		Age:      &age,
	})
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return prof, nil
}

// DeleteMe disables the identity account and removes the profile document.
// Social identities have no provider account to disable, and a missing
// profile is already the desired end state, so both are tolerated. The
// session token is stateless and keeps verifying until it expires.
func (s *Service) DeleteMe(ctx context.Context, identityID string) error {
	if err := s.identity.SetDisabled(ctx, identityID, true); err != nil {
		if !errors.Is(err, identity.ErrNotFound) {
			return fmt.Errorf("disable account: %w", err)
		}
		s.logger.DebugContext(ctx, "no identity account to disable",
			logger.IdentityID(identityID),
		)
	}

	if err := s.profiles.Delete(ctx, identityID); err != nil && !errors.Is(err, profile.ErrNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
