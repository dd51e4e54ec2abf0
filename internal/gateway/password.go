package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/veridia/authgate/internal/identity"
	"github.com/veridia/authgate/internal/sanitizer"
	"github.com/veridia/authgate/internal/validator"
)

// ForgotPasswordInput is the recovery request body.
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// ResetPasswordInput is the password-reset request body.
type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ForgotPassword mints a reset token and mails it. There is no existence
// check: the token is issued and sent for any well-formed address, so the
// response never reveals whether an account exists.
func (s *Service) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	email := sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
	); err != nil {
		return err
	}

	resetToken, err := s.tokens.IssueReset(email)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	if err := s.recovery.Send(ctx, email, resetToken); err != nil {
		return fmt.Errorf("send recovery email: %w", err)
	}
	return nil
}

// ResetPassword redeems a reset token and sets the new password with the
// identity provider. Every way a token can be bad, including outliving its
// account, collapses into ErrResetToken.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := validator.Apply(
		validator.RequiredString("token", in.Token),
		validator.RequiredString("newPassword", in.NewPassword),
	); err != nil {
		return err
	}

	reset, err := s.tokens.VerifyReset(in.Token)
	if err != nil {
		return ErrResetToken
	}

	account, err := s.identity.LookupByEmail(ctx, reset.Email)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return ErrResetToken
		}
		return fmt.Errorf("resolve account: %w", err)
	}

	if err := s.identity.SetPassword(ctx, account.ID, in.NewPassword); err != nil {
		if errors.Is(err, identity.ErrInvalidInput) {
			return ErrInvalidInput
		}
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}
