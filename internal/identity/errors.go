package identity

import "errors"

// Account operation errors.
var (
	// ErrDuplicateEmail is returned when the provider already has an active
	// account for the email.
	ErrDuplicateEmail = errors.New("identity: email already registered")

	// ErrInvalidInput is returned when the provider rejects the request as
	// malformed (bad email, weak or missing password).
	ErrInvalidInput = errors.New("identity: invalid input")

	// ErrNotFound is returned when no account matches.
	ErrNotFound = errors.New("identity: account not found")

	// ErrBadCredentials is returned when the password does not verify.
	ErrBadCredentials = errors.New("identity: bad credentials")

	// ErrMethodDisabled is returned when password sign-in is switched off
	// for the project.
	ErrMethodDisabled = errors.New("identity: sign-in method disabled")

	// ErrAccountDisabled is returned when the account exists but has been
	// deactivated.
	ErrAccountDisabled = errors.New("identity: account disabled")

	// ErrProvider is returned for transport failures and unrecognized
	// provider responses.
	ErrProvider = errors.New("identity: provider request failed")
)

// Social verification errors.
var (
	// ErrInvalidExternalToken is returned when a social token does not
	// verify: bad signature, expired, wrong issuer, or rejected upstream.
	ErrInvalidExternalToken = errors.New("identity: invalid external token")

	// ErrUnknownProvider is returned for provider tags with no registered
	// verifier.
	ErrUnknownProvider = errors.New("identity: unknown social provider")
)
