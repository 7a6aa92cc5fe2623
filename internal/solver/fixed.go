package solver

import (
	"context"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// Fixed takes a fixed number of equal substeps between consecutive samples.
type Fixed struct {
	stepper  dynamo.Integrator
	substeps int
}

func NewFixed(stepper dynamo.Integrator, substeps int) *Fixed {
	if substeps <= 0 {
		substeps = 1
	}
	return &Fixed{stepper: stepper, substeps: substeps}
}

func (s *Fixed) Solve(ctx context.Context, sys dynamo.System, span Span, y0 dynamo.State, ts []float64) (*Solution, error) {
	if err := validate(sys, span, y0, ts); err != nil {
		return nil, err
	}

	f := &counting{sys: sys}
	sol := newSolution(len(ts))
	defer func() { sol.Stats.Evaluations = f.evals }()

	x := y0.Clone()
	t := span.T0

	for _, target := range ts {
		if err := canceled(ctx); err != nil {
			return nil, err
		}

		if target != t {
			h := (target - t) / float64(s.substeps)
			for k := 0; k < s.substeps; k++ {
				x = s.stepper.Step(f, x, t+float64(k)*h, h)
				sol.Stats.Steps++
			}
			if !x.IsValid() {
				return sol.fail(&dynamo.SimulationError{Step: sol.Stats.Steps, Time: target, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}), nil
			}
			t = target
		}

		sol.add(t, x)
	}

	return sol.succeed(), nil
}
