// services/errors.go
package services

import "errors"

// Error taxonomy for the portal authentication flow. Handlers map these
// onto user-facing messages; anything unlisted is a server error.
var (
	// ErrValidation covers malformed identifiers or codes, caught
	// before any lookup.
	ErrValidation = errors.New("malformed identifier or code")

	// ErrInvalidIdentifierOrCode deliberately merges "unknown
	// identifier", "wrong code", "expired code" and "already consumed"
	// so responses never reveal which part failed.
	ErrInvalidIdentifierOrCode = errors.New("invalid code or identifier")

	// ErrDispatchFailed means the code could not be delivered. It is
	// safe to surface distinctly and the user may retry.
	ErrDispatchFailed = errors.New("could not send code")

	// ErrSessionInvalid is an unknown or malformed bearer token.
	ErrSessionInvalid = errors.New("session is not valid")

	// ErrSessionExpired gates already-authenticated flows and prompts a
	// fresh login rather than "invalid credentials".
	ErrSessionExpired = errors.New("session has expired")
)
