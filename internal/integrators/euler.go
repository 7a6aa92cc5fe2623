package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// Euler is the explicit first-order method. Only useful as a baseline.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	next := make(dynamo.State, len(x))
	floats.AddScaledTo(next, x, dt, sys.Derive(x, t))
	return next
}
