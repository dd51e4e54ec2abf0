package gateway

import "errors"

// The gateway's error taxonomy. Handlers translate these to HTTP statuses
// with errors.Is and never inspect provider errors directly. Validation
// failures travel as validator.ValidationErrors, not through this set.
var (
	// ErrInvalidInput is returned when a collaborator rejects the request as
	// malformed after field validation passed (weak password, bad email).
	ErrInvalidInput = errors.New("gateway: invalid input")

	// ErrUnauthorized is returned for any credential failure: unknown email,
	// wrong password. Deliberately uniform to avoid account enumeration.
	ErrUnauthorized = errors.New("gateway: invalid credentials")

	// ErrDisabled is returned when the account exists but is deactivated.
	ErrDisabled = errors.New("gateway: account disabled")

	// ErrMethodDisabled is returned when password sign-in is switched off
	// upstream.
	ErrMethodDisabled = errors.New("gateway: sign-in method disabled")

	// ErrNotFound is returned when the authenticated identity has no profile.
	ErrNotFound = errors.New("gateway: profile not found")

	// ErrDuplicateEmail is returned when registering an email that already
	// has an account.
	ErrDuplicateEmail = errors.New("gateway: email already registered")

	// ErrExternalToken is returned when a social token fails verification.
	ErrExternalToken = errors.New("gateway: external token rejected")

	// ErrUnknownProvider is returned for social provider tags the service
	// does not support.
	ErrUnknownProvider = errors.New("gateway: unknown social provider")

	// ErrResetToken is returned when a password-reset token is expired,
	// malformed, of the wrong kind, or no longer resolves to an account.
	ErrResetToken = errors.New("gateway: reset token invalid or expired")
)
