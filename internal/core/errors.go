package core

import "fmt"

// ValidationError reports caller-supplied data that violates a business
// rule. It is always recoverable by resubmitting corrected input and
// never causes partial state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StorageError reports a failure of the backing store, including rows
// that cannot be mapped back into records. It is surfaced to clients as
// a generic server-side failure; the wrapped cause stays internal.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
