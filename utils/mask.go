package utils

import "strings"

// MaskEmail partially masks an email address for display in the portal
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	name := parts[0]
	domain := parts[1]

	if len(name) <= 2 {
		return name[:1] + "***@" + domain
	}

	return name[:2] + strings.Repeat("*", len(name)-2) + "@" + domain
}

// MaskPhone hides everything but the last four digits of a phone number
func MaskPhone(phone string) string {
	digits := keepDigits(phone)
	if len(digits) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
