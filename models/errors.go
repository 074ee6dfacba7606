package models

import "fmt"

// InvalidEntryError rejects a malformed or out-of-range log entry at the
// storage/aggregation boundary.
type InvalidEntryError struct {
	Field  string
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entry: %s: %s", e.Field, e.Reason)
}

// StorageError wraps an I/O failure against a diary file. Not retried.
type StorageError struct {
	Op    string
	Owner string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("diary %s for %q: %v", e.Op, e.Owner, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// InferenceError wraps a failed or empty model call. The transcript still
// records the failed turn; see ChatService.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// DispatchError wraps a mail transport failure. Logged and surfaced as an
// informational message, never retried or queued.
type DispatchError struct {
	Recipient string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s failed: %v", e.Recipient, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
