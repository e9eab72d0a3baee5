package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned for malformed input.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NotFoundError is returned when a resource does not exist for the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.Resource != "" && e.ID != "" {
		return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
	}
	return "resource not found"
}

// ConflictError is returned when a write collides with existing state.
type ConflictError struct {
	Resource string
	Field    string
	Value    interface{}
	Message  string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Resource != "" && e.Field != "" {
		return fmt.Sprintf("%s with %s '%v' already exists", e.Resource, e.Field, e.Value)
	}
	return "resource conflict"
}

// InvalidTransitionError is returned for a status change the lifecycle forbids.
type InvalidTransitionError struct {
	From RentalStatus
	To   RentalStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("rental is already %s and can no longer change to %s", e.From, e.To)
	}
	return fmt.Sprintf("rental status cannot change from %s to %s", e.From, e.To)
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewConflictError(resource, field string, value interface{}) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

func NewInvalidTransitionError(from, to RentalStatus) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsInvalidTransitionError(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// IsExpected reports whether err is one of the domain outcomes a caller is
// expected to handle, as opposed to an internal fault.
func IsExpected(err error) bool {
	return IsValidationError(err) || IsNotFoundError(err) || IsConflictError(err) || IsInvalidTransitionError(err)
}
