package token

import "errors"

var (
	// ErrMissingSecret is returned by New when no signing secret is
	// configured. This is fatal at startup.
	ErrMissingSecret = errors.New("token: signing secret is not configured")

	// ErrMissingIdentity is returned when issuing a session token without
	// an identity id.
	ErrMissingIdentity = errors.New("token: identity id is required")

	// ErrMissingEmail is returned when issuing a reset token without an
	// email address.
	ErrMissingEmail = errors.New("token: email is required")

	// ErrSigning is returned when the library fails to sign a token.
	ErrSigning = errors.New("token: failed to sign")

	// ErrTokenExpired is returned for structurally valid tokens past their
	// expiry.
	ErrTokenExpired = errors.New("token: expired")

	// ErrTokenMalformed is returned for tokens that do not parse or miss
	// required claims.
	ErrTokenMalformed = errors.New("token: malformed")

	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = errors.New("token: signature invalid")

	// ErrWrongKind is returned when a token verifies but was issued for a
	// different purpose, e.g. a reset token presented as a session bearer.
	ErrWrongKind = errors.New("token: wrong token kind")
)
