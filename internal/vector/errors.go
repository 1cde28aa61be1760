package vector

import (
	"errors"
	"fmt"
)

// Domain errors for vector operations.
var (
	// ErrOutOfRange indicates a checked access past the live elements.
	ErrOutOfRange = errors.New("vector: index out of range")

	// ErrEmpty indicates front/back/pop on a vector with no elements.
	ErrEmpty = errors.New("vector: empty vector")

	// ErrInvalidated indicates an iterator used after the vector was resized
	// or reallocated.
	ErrInvalidated = errors.New("vector: iterator invalidated")

	// ErrSentinel indicates a dereference of an end or rend iterator.
	ErrSentinel = errors.New("vector: dereference of sentinel iterator")

	// ErrBadGrowth indicates a growth factor that would not grow the buffer.
	ErrBadGrowth = errors.New("vector: growth factor must be greater than 1")
)

// IndexError wraps ErrOutOfRange with the offending index.
type IndexError struct {
	Op    string
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %s: index %d, size %d", ErrOutOfRange, e.Op, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
