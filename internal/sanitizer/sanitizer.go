// Package sanitizer normalizes user-supplied account fields before any
// lookup, comparison, or storage happens.
package sanitizer

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// " A@B.com " and "a@b.com" always refer to the same account. The address is
// otherwise preserved byte for byte; no local-part rewriting.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName collapses surrounding whitespace on a name field.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// MaskEmail hides the local part for log lines while keeping the domain
// recognizable.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 || len(parts[0]) == 0 {
		return email
	}

	local := parts[0]
	if len(local) == 1 {
		return "*@" + parts[1]
	}
	return string(local[0]) + strings.Repeat("*", len(local)-1) + "@" + parts[1]
}
