package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrNonPositiveStep indicates a zero or negative step size.
	ErrNonPositiveStep = errors.New("sim: step size must be positive")

	// ErrTimeReversed indicates an end time before the start time.
	ErrTimeReversed = errors.New("sim: end time before start time")

	// ErrInvalidBounds indicates a non-finite time bound.
	ErrInvalidBounds = errors.New("sim: time bounds must be finite")

	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates an initial state whose length does not
	// match the system.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and system")
)

// SimError wraps a failure with the step and time it occurred at.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
