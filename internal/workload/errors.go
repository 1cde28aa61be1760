package workload

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a runner configuration that cannot be used.
	ErrInvalidConfig = errors.New("workload: invalid config")

	// ErrPrecondition indicates an op that would break a vector precondition
	// (pop on empty, swap or set out of range). Such ops are skipped.
	ErrPrecondition = errors.New("workload: op precondition not met")
)

// StepError wraps an error with the step that produced it.
type StepError struct {
	Step    int
	Op      Op
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %s: %v", e.Step, e.Op, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
