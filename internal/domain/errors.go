package domain

import "errors"

// Sentinel errors shared across the application. Callers match them with
// errors.Is; more specific context is added by wrapping.
var (
	// ErrValidation is returned when an input fails validation, such as an
	// empty required field or an out-of-range difficulty. The operation is
	// a no-op and may be retried with corrected input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a deck or card id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData is returned when the persisted document exists but
	// cannot be parsed. The process continues with an empty collection.
	ErrCorruptData = errors.New("corrupt data")

	// ErrPersistence is returned when writing the persisted document fails.
	// In-memory state stays authoritative and a later save may succeed.
	ErrPersistence = errors.New("persistence failure")
)
