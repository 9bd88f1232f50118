package schedule

import (
	"errors"
	"fmt"
)

// ErrConflict is returned by Reserve when the slot is no longer free.
// No write has happened when it is returned.
var ErrConflict = errors.New("slot already booked")

// ErrFullDayLeave is the conflict caused by an all-day calendar entry
// blocking the whole date. It wraps ErrConflict so callers that only
// care about "taken vs free" keep working.
var ErrFullDayLeave = fmt.Errorf("%w: full-day leave", ErrConflict)

// ValidationError reports malformed caller input. Nothing was sent to the
// calendar backend when it is returned.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a failure of the calendar backend (transport, auth,
// quota, timeout). Retryable by the caller, never retried here.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
