// Package validator provides rule-based input validation for request
// payloads. Rules are composed per handler and applied in one pass; the
// resulting ValidationErrors carry catalog keys so the HTTP layer can
// localize what it returns.
package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single failed rule.
type ValidationError struct {
	Field      string
	Message    string
	MessageKey string
}

// ValidationErrors is the error type returned by Apply.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// First returns the first failed rule. Callers must check len beforehand.
func (ve ValidationErrors) First() ValidationError {
	return ve[0]
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes the rules in order and returns the accumulated failures,
// or nil when everything passed.
func Apply(rules ...Rule) error {
	var failed ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			failed = append(failed, rule.Error)
		}
	}

	if len(failed) == 0 {
		return nil
	}
	return failed
}

// Extract pulls ValidationErrors out of an error chain, or returns nil.
func Extract(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
