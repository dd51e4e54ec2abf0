package mailer

import "errors"

var (
	// ErrInvalidConfig is returned when the Postmark sender cannot be built
	// from the configuration.
	ErrInvalidConfig = errors.New("mailer: invalid config")

	// ErrInvalidParams is returned when the message fails validation before
	// any provider call.
	ErrInvalidParams = errors.New("mailer: invalid email params")

	// ErrDeliveryFailed wraps a provider-side send failure.
	ErrDeliveryFailed = errors.New("mailer: failed to send email")
)
