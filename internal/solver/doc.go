// Package solver integrates an ODE over a time span and reports the
// trajectory at requested sample times.
//
// Every backend implements [Solver]:
//
//   - [Adaptive]: Dormand-Prince 5(4) with error control (name "rk45")
//   - [External]: RK4 from github.com/ChristopherRabotin/ode (name "ode")
//   - [Fixed]: fixed substeps of an explicit stepper ("rk4", "euler")
//
// Numerical failure is not an error: it is reported through
// [Solution.Success] and [Solution.Message], with the samples reached so far.
// Errors are reserved for malformed requests and cancellation.
//
// Spans may run backwards (Tf < T0). Samples must then be non-increasing and
// the trajectory is integrated backwards in time.
package solver
