package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// RequiredString validates that a string is not empty after trimming.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:      field,
			Message:    "field is required",
			MessageKey: "validation.required",
		},
	}
}

// ValidEmail validates that a string parses as an RFC 5322 address without
// a display name.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}
			return addr.Address == value
		},
		Error: ValidationError{
			Field:      field,
			Message:    "must be a valid email address",
			MessageKey: "validation.email",
		},
	}
}

// MatchString validates that two fields carry the same value, e.g. password
// confirmation.
func MatchString(field, value, other string) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:      field,
			Message:    "fields do not match",
			MessageKey: "validation.match",
		},
	}
}

// MinInt validates that a numeric value is at least min.
func MinInt(field string, value, min int) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:      field,
			Message:    fmt.Sprintf("must be at least %d", min),
			MessageKey: "validation." + field + "_minimum",
		},
	}
}
