package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRejected means the login call failed. The wizard stays on the
	// login step and the user retries.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrSessionExpired means a date or seat fetch failed after login. The
	// wizard resets to the login step and discards downstream state.
	ErrSessionExpired = errors.New("session expired")

	// ErrValidationBlocked means a local guard rejected the action before
	// any network call was made.
	ErrValidationBlocked = errors.New("action blocked by validation")
)

// BookingRejectedError carries the human-readable reason the finalize call
// returned for a rejected booking.
type BookingRejectedError struct {
	Reason string
}

func (e *BookingRejectedError) Error() string {
	return fmt.Sprintf("booking rejected: %s", e.Reason)
}

// TransportError wraps a network-level failure. State is unchanged unless
// the operation's error policy says otherwise.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
