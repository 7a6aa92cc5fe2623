package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an ODE right-hand side dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// SystemFunc adapts a plain function to System.
type SystemFunc struct {
	Dim int
	Fn  func(x State, t float64) State
}

func (f SystemFunc) Derive(x State, t float64) State { return f.Fn(x, t) }
func (f SystemFunc) StateDim() int                   { return f.Dim }

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator takes one trial step and reports a suggested next step
// size. A step whose error exceeds tol returns ErrStepRejected together with
// a smaller suggestion; the returned state must then be discarded.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt float64, tol Tolerance) (State, float64, error)
}

// Tolerance is a mixed absolute/relative error bound per component:
// |err_i| <= Abs + Rel*max(|x_i|, |x_new_i|).
type Tolerance struct {
	Rel float64
	Abs float64
}

func (t Tolerance) Validate() error {
	if t.Rel <= 0 && t.Abs <= 0 {
		return fmt.Errorf("tolerance must be positive, got rel=%g abs=%g", t.Rel, t.Abs)
	}
	if t.Rel < 0 || t.Abs < 0 {
		return fmt.Errorf("tolerance must not be negative, got rel=%g abs=%g", t.Rel, t.Abs)
	}
	return nil
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}
