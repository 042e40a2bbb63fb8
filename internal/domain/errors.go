package domain

import "errors"

// Admission error taxonomy. All four are terminal and non-retryable; callers
// distinguish them with errors.Is and map each kind to a user-facing signal.
// Conflict detail (already subscribed vs overlapping schedule) travels in the
// wrapping message.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)
