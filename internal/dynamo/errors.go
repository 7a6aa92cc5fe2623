package dynamo

import "errors"

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepRejected indicates an adaptive step whose error estimate exceeded
	// the tolerance. The suggested step returned with it is still usable.
	ErrStepRejected = errors.New("dynamo: step rejected by error estimate")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepBudget indicates the step budget ran out before the end time.
	ErrStepBudget = errors.New("dynamo: maximum number of steps exceeded")

	// ErrContextCanceled indicates the integration was interrupted.
	ErrContextCanceled = errors.New("dynamo: integration canceled by context")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with integration context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
