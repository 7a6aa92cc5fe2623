package solver

import (
	"context"

	"github.com/ChristopherRabotin/ode"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// External drives the RK4 integrator of github.com/ChristopherRabotin/ode
// over each sample interval. That integrator only marches forward with a
// positive step, so reversed spans are solved in reflected time s = -t,
// where dy/ds = -f(y, -s).
type External struct {
	substeps int
}

func NewExternal(substeps int) *External {
	if substeps <= 0 {
		substeps = 1
	}
	return &External{substeps: substeps}
}

func (e *External) Solve(ctx context.Context, sys dynamo.System, span Span, y0 dynamo.State, ts []float64) (*Solution, error) {
	if err := validate(sys, span, y0, ts); err != nil {
		return nil, err
	}

	f := &counting{sys: sys}
	sol := newSolution(len(ts))
	defer func() { sol.Stats.Evaluations = f.evals }()

	dir := span.Direction()
	x := y0.Clone()
	t := span.T0

	for _, target := range ts {
		if err := canceled(ctx); err != nil {
			return nil, err
		}

		if target != t {
			l := &leg{f: f, dir: dir, state: x, limit: e.substeps}
			h := dir * (target - t) / float64(e.substeps)
			if err := l.run(dir*t, h); err != nil {
				return sol.fail(err), nil
			}
			sol.Stats.Steps += l.steps
			x = dynamo.State(l.state)
			if !x.IsValid() {
				return sol.fail(&dynamo.SimulationError{Step: sol.Stats.Steps, Time: target, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}), nil
			}
			t = target
		}

		sol.add(t, x)
	}

	return sol.succeed(), nil
}

// leg is the ode.Integrable for one sample interval. It stops after a fixed
// number of steps rather than at a time, so accumulated rounding in the
// library's clock never adds or drops a step.
type leg struct {
	f     *counting
	dir   float64
	state []float64
	steps int
	limit int
}

func (l *leg) GetState() []float64 { return l.state }

func (l *leg) SetState(s float64, y []float64) {
	l.state = y
	l.steps++
}

func (l *leg) Stop(s float64) bool { return l.steps >= l.limit }

func (l *leg) Func(s float64, y []float64) []float64 {
	dx := l.f.Derive(dynamo.State(y), l.dir*s)
	if !dx.IsValid() {
		panic(abort{time: l.dir * s, state: dynamo.State(y).Clone()})
	}
	out := make([]float64, len(dx))
	for i := range dx {
		out[i] = l.dir * dx[i]
	}
	return out
}

// abort unwinds out of the library when the right-hand side stops being
// finite; it has no error path of its own.
type abort struct {
	time  float64
	state dynamo.State
}

func (l *leg) run(s0, h float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			err = &dynamo.SimulationError{Step: l.steps, Time: a.time, State: a.state, Wrapped: dynamo.ErrInvalidState}
		}
	}()

	_, _, err = ode.NewRK4(s0, h, l).Solve()
	return err
}
