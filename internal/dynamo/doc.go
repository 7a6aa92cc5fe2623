// Package dynamo provides the core primitives for integrating ordinary
// differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: single-step numerical method
//   - [AdaptiveIntegrator]: integrator with an embedded error estimate
//   - [Metric]: scalar observed along a trajectory
//
// # Example
//
//	rk := integrators.NewRK45()
//	tol := dynamo.Tolerance{Rel: 1e-6, Abs: 1e-9}
//	next, dtNext, err := rk.StepAdaptive(rocket.Model{}, x0, 0, 0.01, tol)
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
package dynamo
