package cli

import (
	"errors"
	"fmt"
)

// UsageError is a special purpose error used to signal that usage information should be shown to the user.
// Parse and dispatch failures are returned as a UsageError, and handlers may return one for their own validation.
type UsageError struct {
	wrapped error
}

func (e *UsageError) Error() string {
	if e.wrapped == nil {
		return "usage error"
	}
	return "usage error: " + e.wrapped.Error()
}

func (e *UsageError) Is(err error) bool {
	_, ok := err.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}

// NewUsageError is used to create a [UsageError].
// The format and args parameters are passed to [fmt.Errorf] to create the underlying error.
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}

// WrapUsage marks err as a [UsageError], unless it already is one.
// A nil err returns nil.
func WrapUsage(err error) error {
	if err == nil {
		return nil
	}
	var target *UsageError
	if errors.As(err, &target) {
		return err
	}
	return &UsageError{wrapped: err}
}
