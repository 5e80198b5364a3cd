package services

import "fmt"

// ValidationError rejects bad input before any batch is built. Handlers
// map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a ledger store failure after rollback has
// already been performed. Handlers map it to 502 and surface the
// store's message text.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
