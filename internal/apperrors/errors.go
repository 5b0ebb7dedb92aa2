package apperrors

import (
	"errors"
	"fmt"
)

// NoDataMessage annotates query results for a valid key that has no derived rows yet.
// It is a first-class empty result, not an error.
const NoDataMessage = "No data available"

// ErrMaterializationInProgress is returned when a materialization for the same
// trade date is already running in this process.
var ErrMaterializationInProgress = errors.New("materialization already running for trade date")

// TransientStoreError reports that the backing store was unreachable or did not
// answer in time. Operations failing with it are safe to retry.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store unavailable: %s", e.Op)
	}
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// Temporary marks the error as retryable for callers that probe for it.
func (e *TransientStoreError) Temporary() bool { return true }

// NewTransient wraps err as a TransientStoreError for operation op.
func NewTransient(op string, err error) error {
	return &TransientStoreError{Op: op, Err: err}
}

// IsTransient reports whether err (or anything it wraps) is a TransientStoreError.
func IsTransient(err error) bool {
	var t *TransientStoreError
	return errors.As(err, &t)
}

// MalformedInputError describes an unparseable or out-of-range caller input.
type MalformedInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Malformed builds a MalformedInputError.
func Malformed(field, value, reason string) error {
	return &MalformedInputError{Field: field, Value: value, Reason: reason}
}

// IsMalformed reports whether err (or anything it wraps) is a MalformedInputError.
func IsMalformed(err error) bool {
	var m *MalformedInputError
	return errors.As(err, &m)
}
