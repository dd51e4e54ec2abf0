package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veridia/authgate/internal/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "ANA@X.com", "ana@x.com"},
		{"trims whitespace", "  ana@x.com  ", "ana@x.com"},
		{"trims and lowercases", " A@B.com ", "a@b.com"},
		{"already normalized", "a@b.com", "a@b.com"},
		{"preserves dots in local part", "a.n.a@x.com", "a.n.a@x.com"},
		{"preserves plus addressing", "ana+tag@x.com", "ana+tag@x.com"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, sanitizer.NormalizeEmail(tc.input))
		})
	}
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	t.Parallel()

	once := sanitizer.NormalizeEmail(" Ana.Lopez@Example.COM ")
	twice := sanitizer.NormalizeEmail(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ana", sanitizer.NormalizeName("  Ana "))
	assert.Equal(t, "", sanitizer.NormalizeName("   "))
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a**@x.com", sanitizer.MaskEmail("ana@x.com"))
	assert.Equal(t, "*@x.com", sanitizer.MaskEmail("a@x.com"))
	assert.Equal(t, "not-an-email", sanitizer.MaskEmail("not-an-email"))
}
