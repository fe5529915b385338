// Package errors provides centralized error definitions for the concord
// codebase: sentinel errors for the session store and participant handling,
// plus a semantic ValidationError type for invalid input.
//
// Guard and role violations inside the negotiation controller are deliberate
// no-ops, not errors; this package covers the conditions that are genuinely
// exceptional (missing records, corrupted state, unknown participants).
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience, so callers can
// import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Store-related sentinel errors.
var (
	// ErrSessionNotFound indicates that a session could not be found.
	ErrSessionNotFound = New("session not found")
	// ErrStoreCorrupted indicates that persisted session data could not be parsed.
	ErrStoreCorrupted = New("session store corrupted")
	// ErrSchemaMismatch indicates the persisted blob carries an incompatible schema version.
	ErrSchemaMismatch = New("session store schema mismatch")
)

// Participant-related sentinel errors.
var (
	// ErrUnknownParticipant indicates a participant identifier outside the configured pair.
	ErrUnknownParticipant = New("unknown participant")
)

// ValidationError indicates invalid input or state.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return As(err, &ve)
}
