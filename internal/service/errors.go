package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrProgressNotCleared = errors.New("booking saved but wizard progress was not cleared")
)

// ValidationError carries the re-rendered confirm step of a rejected final
// submission.
type ValidationError struct {
	View StepView
}

func (e *ValidationError) Error() string {
	return "booking validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
