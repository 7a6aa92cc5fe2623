package integrators

import (
	"testing"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int { return 3 }
func (b *benchDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -9.81 + (-0.1*100.0-x[1])/x[2], -0.1}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	sys := &benchDynamics{}
	x := dynamo.State{0.0, 50.0, 10.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 1e-6)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	sys := &benchDynamics{}
	x := dynamo.State{0.0, 50.0, 10.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 1e-6)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	sys := &benchDynamics{}
	x := dynamo.State{0.0, 50.0, 10.0}
	tol := dynamo.Tolerance{Rel: 1e-6, Abs: 1e-9}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, _, _ = integrator.StepAdaptive(sys, x, 0, 1e-6, tol)
	}
}
