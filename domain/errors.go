package domain

import (
	"fmt"
	"strings"
)

// FieldError points at the specific input the caller has to fix.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError covers bad input: unknown students, disallowed statuses,
// future dates, incomplete roster coverage. Never retried automatically.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// NotFoundError is a normal outcome for queries (a day simply not marked
// yet) and an error only where the entity is required to exist.
type NotFoundError struct {
	Resource string `json:"resource"`
	Key      string `json:"key"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// ForbiddenError reports a caller whose role or course ownership does not
// cover the operation.
type ForbiddenError struct {
	Message string `json:"message"`
}

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError is reserved for an optimistic-locking extension; no base
// operation returns it.
type ConflictError struct {
	Resource string `json:"resource"`
	Key      string `json:"key"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting update on %s: %s", e.Resource, e.Key)
}

// StoreError wraps persistence failures. Marking is idempotent per
// (course, date), so callers may safely retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
