package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrCorruptSnapshot matches every *CorruptSnapshotError.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// CorruptSnapshotError is returned by Load when a persisted collection could
// not be decoded. The store has already fallen back to an empty collection.
type CorruptSnapshotError struct {
	Key string
	Err error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("snapshot %q is corrupt, starting empty: %v", e.Key, e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error { return e.Err }

func (e *CorruptSnapshotError) Is(target error) bool { return target == ErrCorruptSnapshot }
