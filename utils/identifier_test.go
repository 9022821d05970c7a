package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIdentifierEmail(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		normalized string
	}{
		{"plain email", "joao@example.com", "joao@example.com"},
		{"mixed case", "Joao.Silva@Example.COM", "joao.silva@example.com"},
		{"surrounding whitespace", "  maria@agency.com.br  ", "maria@agency.com.br"},
		{"plus addressing", "ana+aprova@example.com", "ana+aprova@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, normalized, err := ClassifyIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, IdentifierEmail, kind)
			assert.Equal(t, tt.normalized, normalized)
		})
	}
}

func TestClassifyIdentifierPhone(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		normalized string
	}{
		{"bare mobile digits", "11999998888", "(11) 99999-8888"},
		{"bare landline digits", "1133334444", "(11) 3333-4444"},
		{"already formatted", "(11) 99999-8888", "(11) 99999-8888"},
		{"spaces and dashes", "11 99999-8888", "(11) 99999-8888"},
		{"country code", "+55 11 99999-8888", "+55 (11) 99999-8888"},
		{"country code landline", "+55 11 3333-4444", "+55 (11) 3333-4444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, normalized, err := ClassifyIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, IdentifierPhone, kind)
			assert.Equal(t, tt.normalized, normalized)
		})
	}
}

// Formatting must never add or drop digits, and classifying an already
// normalized value must return it unchanged.
func TestClassifyIdentifierPhonePreservesDigits(t *testing.T) {
	inputs := []string{"11999998888", "1133334444", "+5511999998888", "(11) 99999-8888"}

	for _, input := range inputs {
		kind, normalized, err := ClassifyIdentifier(input)
		require.NoError(t, err)
		require.Equal(t, IdentifierPhone, kind)
		assert.Equal(t, keepDigits(input), keepDigits(normalized), "digits changed for %q", input)

		kind2, normalized2, err := ClassifyIdentifier(normalized)
		require.NoError(t, err)
		assert.Equal(t, kind, kind2)
		assert.Equal(t, normalized, normalized2, "normalization not idempotent for %q", input)
	}
}

func TestClassifyIdentifierEmailIdempotent(t *testing.T) {
	_, normalized, err := ClassifyIdentifier("  Joao@Example.COM ")
	require.NoError(t, err)

	_, again, err := ClassifyIdentifier(normalized)
	require.NoError(t, err)
	assert.Equal(t, normalized, again)
}

func TestClassifyIdentifierRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"word", "hello"},
		{"at sign only", "@"},
		{"malformed email", "joao@"},
		{"email without tld", "joao@example"},
		{"too few digits", "1234567"},
		{"too many digits", "1234567890123456"},
		{"plus without digits", "+"},
		{"over max length", strings.Repeat("a", 250) + "@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ClassifyIdentifier(tt.input)
			assert.ErrorIs(t, err, ErrUnclassifiable)
		})
	}
}
