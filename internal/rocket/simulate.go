package rocket

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rocketsim/internal/dynamo"
	"github.com/san-kum/rocketsim/internal/solver"
)

// Samples is the number of evenly spaced output times, end points included.
const Samples = 500

type Result struct {
	Params   Params
	Times    []float64
	Position []float64
	Velocity []float64
	Mass     []float64
	Success  bool
	Stats    solver.Stats
}

// Grid returns Samples evenly spaced times from t0 to tf. tf may be smaller
// than t0, in which case the grid runs backwards.
func Grid(t0, tf float64) []float64 {
	ts := floats.Span(make([]float64, Samples), t0, tf)
	// Span accumulates rounding; the last sample must be tf exactly.
	ts[Samples-1] = tf
	return ts
}

// Simulate integrates the model from p over Grid(p.StartTime, p.EndTime).
// A solver that errors, reports failure or returns no rows yields an
// IntegrationError. Cancellation of ctx is returned as is.
func Simulate(ctx context.Context, s solver.Solver, p Params) (*Result, error) {
	ts := Grid(p.StartTime, p.EndTime)
	span := solver.Span{T0: p.StartTime, Tf: p.EndTime}

	sol, err := s.Solve(ctx, Model{}, span, p.State(), ts)
	if err != nil {
		if errors.Is(err, dynamo.ErrContextCanceled) {
			return nil, err
		}
		return nil, &IntegrationError{Message: err.Error(), Cause: err}
	}
	if !sol.Success {
		return nil, &IntegrationError{Message: sol.Message, Cause: sol.Err}
	}
	if len(sol.States) == 0 {
		return nil, &IntegrationError{Message: "solver returned no samples"}
	}
	if len(sol.States) != len(ts) {
		return nil, &IntegrationError{Message: fmt.Sprintf("solver returned %d of %d samples", len(sol.States), len(ts))}
	}

	return &Result{
		Params:   p,
		Times:    sol.Times,
		Position: sol.Column(0),
		Velocity: sol.Column(1),
		Mass:     sol.Column(2),
		Success:  true,
		Stats:    sol.Stats,
	}, nil
}

// Run parses the five text fields and simulates. The solver is not touched
// when a field fails to parse.
func Run(ctx context.Context, s solver.Solver, fields [5]string) (*Result, error) {
	p, err := ParseParams(fields)
	if err != nil {
		return nil, err
	}
	return Simulate(ctx, s, p)
}

// State returns sample i as a state vector.
func (r *Result) State(i int) dynamo.State {
	return dynamo.State{r.Position[i], r.Velocity[i], r.Mass[i]}
}
