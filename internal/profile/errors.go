package profile

import "errors"

var (
	// ErrConnectFailed is returned when the document store stays unreachable
	// after all connection attempts.
	ErrConnectFailed = errors.New("profile: failed to connect to document store")

	// ErrHealthcheckFailed wraps a failed readiness ping.
	ErrHealthcheckFailed = errors.New("profile: document store healthcheck failed")

	// ErrAlreadyExists is returned when a profile with the id is already
	// stored.
	ErrAlreadyExists = errors.New("profile: profile already exists")

	// ErrNotFound is returned when no profile matches.
	ErrNotFound = errors.New("profile: profile not found")
)
