package promise

import (
	stderrors "errors"

	"github.com/juju/errors"
)

const (
	// ErrCancelled is the rejection reason a promise settles with when it is
	// cancelled and no later rejection handler converts it.
	ErrCancelled = errors.ConstError("Cancelled")

	// ErrSelfResolution rejects a promise whose callback returned the very
	// promise derived from that callback, which can never settle.
	ErrSelfResolution = errors.ConstError("promise: a promise callback cannot return its own promise")
)

// IsCancelled reports whether err is, or wraps, a cancellation rejection.
func IsCancelled(err error) bool {
	return stderrors.Is(err, ErrCancelled)
}

// recoveredError normalizes a recovered panic value into an error, keeping
// error values as they are.
func recoveredError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errors.Errorf("promise: recovered panic: %v", r)
}
