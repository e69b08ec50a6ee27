package status

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus is returned on any lookup with a value outside the
	// registry. Callers must not mask it with a guessed label.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrNoPreviousStatus is returned when a revert is attempted from
	// NewUser or Blocked.
	ErrNoPreviousStatus = errors.New("no previous status")

	// ErrPreconditionNotMet is wrapped by IllegalTransitionError when a
	// forward step is rejected because its required data is missing.
	ErrPreconditionNotMet = errors.New("precondition not met")
)

// IllegalTransitionError reports a rejected status change. State is left
// unchanged whenever it is returned.
type IllegalTransitionError struct {
	From   StudentStatus
	To     StudentStatus
	Reason string
	cause  error
}

func (e *IllegalTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("illegal transition %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("illegal transition %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return e.cause }

// PersistenceWriteFailure wraps a storage error so handlers can distinguish
// "the transition was illegal" from "the transition could not be committed".
type PersistenceWriteFailure struct {
	Op  string
	Err error
}

func (e *PersistenceWriteFailure) Error() string {
	return fmt.Sprintf("persistence write failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceWriteFailure) Unwrap() error { return e.Err }
