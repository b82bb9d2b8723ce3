package dupe

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidTag indicates a `clone` struct tag has an invalid value.
	ErrInvalidTag = errors.New("invalid clone tag")

	// ErrMarshal indicates the codec failed to marshal a snapshot.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal a snapshot.
	ErrUnmarshal = errors.New("unmarshal failed")
)

// PolicyError represents a clone tag validation error.
// It wraps ErrInvalidTag with the field and tag value that triggered it.
type PolicyError struct {
	Err   error  // Underlying sentinel error
	Field string // Field name that carried the tag
	Value string // Offending tag value
}

func (e *PolicyError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s %q (field %s)", e.Err.Error(), e.Value, e.Field)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *PolicyError) Unwrap() error {
	return e.Err
}

// SnapshotError represents a marshal/unmarshal error during a codec
// round-trip clone.
type SnapshotError struct {
	Err      error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	TypeName string // Type being snapshotted
	Cause    error  // Original error from the codec
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for %s: %v", e.Err.Error(), e.TypeName, e.Cause)
	}
	return fmt.Sprintf("%s for %s", e.Err.Error(), e.TypeName)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// newPolicyError creates a PolicyError for tag validation failures.
func newPolicyError(sentinel error, field, value string) error {
	return &PolicyError{
		Err:   sentinel,
		Field: field,
		Value: value,
	}
}

// newSnapshotError creates a SnapshotError for codec round-trip failures.
func newSnapshotError(sentinel error, typeName string, cause error) error {
	return &SnapshotError{
		Err:      sentinel,
		TypeName: typeName,
		Cause:    cause,
	}
}
