package alamouti

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputSize is returned for configurations or inputs whose size violates a
	// constraint (odd bit count, no receive antenna, empty Eb/N0 range ...).
	ErrInvalidInputSize = errors.New("invalid input size")

	// ErrDegenerateChannel is reported by the combiner when every fading coefficient of a
	// codeword is exactly zero.
	ErrDegenerateChannel = errors.New("degenerate channel")
)

// SizeError names the field and the constraint it failed. It matches ErrInvalidInputSize
// with errors.Is.
type SizeError struct {
	Field      string
	Value      interface{}
	Constraint string
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%v: %s=%v, must be %s", ErrInvalidInputSize, e.Field, e.Value, e.Constraint)
}

func (e *SizeError) Unwrap() error {
	return ErrInvalidInputSize
}

func NewSizeError(field string, value interface{}, constraint string) error {
	return &SizeError{Field: field, Value: value, Constraint: constraint}
}
