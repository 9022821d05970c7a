// utils/identifier.go
package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Identifier kinds returned by ClassifyIdentifier
const (
	IdentifierEmail = "email"
	IdentifierPhone = "phone"
)

// Identifiers longer than this are rejected before any normalization
const maxIdentifierLength = 254

// ErrUnclassifiable means the input is neither an email nor a phone-like
// string and must be rejected before any dispatch.
var ErrUnclassifiable = errors.New("identifier is neither an email nor a phone number")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ClassifyIdentifier determines whether a free-form identifier is an
// email or a phone number and returns its normalized form. Emails are
// trimmed and lower-cased; phone numbers keep exactly their digits,
// reformatted into the canonical local pattern (e.g. "(11) 99999-8888").
// Normalization is idempotent: classifying a normalized value yields the
// same value again.
func ClassifyIdentifier(raw string) (kind string, normalized string, err error) {
	if len(raw) > maxIdentifierLength {
		return "", "", ErrUnclassifiable
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "", ErrUnclassifiable
	}

	if strings.Contains(s, "@") {
		email := strings.ToLower(s)
		if !emailRegex.MatchString(email) {
			return "", "", ErrUnclassifiable
		}
		return IdentifierEmail, email, nil
	}

	if !looksLikePhone(s) {
		return "", "", ErrUnclassifiable
	}

	digits := keepDigits(s)
	if len(digits) < 8 || len(digits) > 15 {
		return "", "", ErrUnclassifiable
	}

	return IdentifierPhone, FormatPhone(digits), nil
}

// looksLikePhone accepts digit-leading strings plus already-formatted
// numbers starting with "+" or "(".
func looksLikePhone(s string) bool {
	first := s[0]
	if first >= '0' && first <= '9' {
		return true
	}
	if first != '+' && first != '(' {
		return false
	}
	rest := keepDigits(s)
	return len(rest) > 0
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a bare digit string in the canonical local
// pattern. Formatting only adds punctuation; the digits are preserved
// exactly. Numbers that do not match a known shape are returned as the
// plain digit string.
func FormatPhone(digits string) string {
	switch {
	case len(digits) == 10:
		// Landline: (AA) NNNN-NNNN
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
	case len(digits) == 11:
		// Mobile: (AA) NNNNN-NNNN
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	case len(digits) == 12 && strings.HasPrefix(digits, "55"):
		return "+55 " + FormatPhone(digits[2:])
	case len(digits) == 13 && strings.HasPrefix(digits, "55"):
		return "+55 " + FormatPhone(digits[2:])
	default:
		return digits
	}
}
