package model

import "errors"

// Sentinel errors shared across the store, report, and API layers.
// Store functions wrap these with context; handlers unwrap them with
// errors.Is to pick an HTTP status.
var (
	// ErrNotFound is returned when a referenced location, user, session,
	// or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an item append targets a session
	// that is no longer active.
	ErrInvalidState = errors.New("invalid session state")

	// ErrValidation is returned for malformed input rejected before any
	// database write.
	ErrValidation = errors.New("validation failed")

	// ErrConstraint is returned when the database rejects a write due to
	// a uniqueness or foreign-key constraint.
	ErrConstraint = errors.New("constraint violation")

	// ErrAuth is returned on credential mismatch. The message never
	// distinguishes an unknown username from a wrong password.
	ErrAuth = errors.New("invalid credentials")
)
