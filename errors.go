package queuectl

import "errors"

var (
	// ErrValidation indicates a malformed job submission, config value, or
	// worker count. No state change occurs.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateJob indicates that Enqueue was called with an id that
	// already exists in the store. This is a normal negative result, not
	// an exceptional condition — callers should check for it with
	// errors.Is and surface it as a non-error outcome.
	ErrDuplicateJob = errors.New("duplicate job id")

	// ErrNotFound indicates that a read or retry referenced an unknown
	// job id.
	ErrNotFound = errors.New("job not found")

	// ErrIllegalTransition indicates a manual retry was requested for a
	// job not currently in the failed or dlq state. Queue.Retry returns it
	// and leaves the job unchanged.
	ErrIllegalTransition = errors.New("illegal state transition")

	// ErrBadStatus indicates a Cleaner.Clean call targeting a non-terminal
	// status.
	ErrBadStatus = errors.New("bad job status for this operation")
)

// StoreError wraps an unrecoverable I/O or database failure with the name of
// the operation that hit it. The store package in this module does not
// produce it: it returns driver errors unwrapped.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store error during " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
