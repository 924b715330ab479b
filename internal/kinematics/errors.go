package kinematics

import (
	"errors"
	"fmt"
)

// Domain errors for chain evaluation.
var (
	// ErrEmptyChain indicates a chain with no links or no angles.
	ErrEmptyChain = errors.New("kinematics: empty chain")

	// ErrShapeMismatch indicates the number of lengths and angles differ.
	ErrShapeMismatch = errors.New("kinematics: lengths and angles differ in count")

	// ErrUnknownDimension indicates a dimension other than 2 or 3.
	ErrUnknownDimension = errors.New("kinematics: unknown dimension")
)

// ShapeError records the sizes of a mismatched chain.
type ShapeError struct {
	Lengths int
	Angles  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %d lengths, %d angles", ErrShapeMismatch, e.Lengths, e.Angles)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// BatchError wraps the failure of one angle set inside a batch.
type BatchError struct {
	Index   int
	Wrapped error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("angle set %d: %v", e.Index, e.Wrapped)
}

func (e *BatchError) Unwrap() error {
	return e.Wrapped
}

// Validate checks that a chain is non-empty and that lengths and angles
// pair up one to one.
func Validate(lengths, angles []float64) error {
	if len(lengths) == 0 || len(angles) == 0 {
		return ErrEmptyChain
	}
	if len(lengths) != len(angles) {
		return &ShapeError{Lengths: len(lengths), Angles: len(angles)}
	}
	return nil
}
