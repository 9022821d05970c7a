package repositories

import "errors"

var (
	// ErrNotFound means no record matched the query
	ErrNotFound = errors.New("record not found")

	// ErrAmbiguous means more than one approver matched a normalized
	// identifier. Resolution must never silently pick one.
	ErrAmbiguous = errors.New("identifier matches more than one approver")
)
