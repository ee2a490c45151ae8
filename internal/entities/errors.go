package entities

import "fmt"

// ValidationError reports a field value that would violate a Book or
// ReadingSession invariant. Setters and constructors return it without
// mutating the record, so an in-memory entity never holds state the store
// would refuse to persist.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
