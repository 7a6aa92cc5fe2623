package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// RK4 is the classic fourth-order Runge-Kutta stepper. Stage buffers are
// reused between calls, so an RK4 must not be shared across goroutines.
type RK4 struct {
	k      [4]dynamo.State
	stage  dynamo.State
	weight [4]float64
}

func NewRK4() *RK4 {
	return &RK4{weight: [4]float64{1, 2, 2, 1}}
}

func (r *RK4) grow(n int) {
	if len(r.stage) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.stage = make(dynamo.State, n)
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	r.grow(len(x))
	half := 0.5 * dt

	copy(r.k[0], sys.Derive(x, t))

	floats.AddScaledTo(r.stage, x, half, r.k[0])
	copy(r.k[1], sys.Derive(r.stage, t+half))

	floats.AddScaledTo(r.stage, x, half, r.k[1])
	copy(r.k[2], sys.Derive(r.stage, t+half))

	floats.AddScaledTo(r.stage, x, dt, r.k[2])
	copy(r.k[3], sys.Derive(r.stage, t+dt))

	next := make(dynamo.State, len(x))
	copy(next, x)
	for i, k := range r.k {
		floats.AddScaled(next, dt*r.weight[i]/6, k)
	}
	return next
}
