package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrTaskNotFound       = errors.New("task not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrInvalidTransition  = errors.New("invalid timer transition")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrSchedulerRun       = errors.New("scheduled review run failed")
)

// ValidationError describes invalid input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalidTransition(op string, state TimerState) error {
	return fmt.Errorf("%w: cannot %s a task that is %s", ErrInvalidTransition, op, state)
}
