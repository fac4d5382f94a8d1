package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// RemoteError wraps a failed Linear API call. It is surfaced to callers as a
// structured result rather than a panic: side effects committed before the
// failure are not rolled back, and the caller decides whether to retry or
// leave the drift to reconciliation.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("linear %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Remote wraps err as a RemoteError for the named operation.
func Remote(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}

// IsRemote reports whether err is a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// Validation builds an ErrValidation with detail.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
