package domain

import "fmt"

// ValidationError signals malformed or out-of-policy input (bad dates, bad
// hours, bad pagination, inverted ranges). Never retried; always surfaced to
// the caller with its message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist. It carries
// the entity kind and the lookup key for diagnostics.
type NotFoundError struct {
	Resource string
	Field    string
	Value    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %s", e.Resource, e.Field, e.Value)
}

// NewNotFoundError builds a NotFoundError for the given resource and lookup key.
func NewNotFoundError(resource, field, value string) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// InvalidStateError signals an operation attempted against an entity whose
// current status forbids it. Carries current and expected status for diagnostics.
type InvalidStateError struct {
	Message  string
	Current  string
	Expected string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s (current: %s, expected: %s)", e.Message, e.Current, e.Expected)
}
