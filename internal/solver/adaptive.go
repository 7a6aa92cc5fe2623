package solver

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/rocketsim/internal/dynamo"
	"github.com/san-kum/rocketsim/internal/integrators"
)

// Adaptive drives the Dormand-Prince stepper with error control. Steps are
// shortened so that every sample time is landed on exactly.
type Adaptive struct {
	stepper dynamo.AdaptiveIntegrator
	opts    Options
}

func NewAdaptive(opts Options) *Adaptive {
	return &Adaptive{stepper: integrators.NewRK45(), opts: opts}
}

func (a *Adaptive) Solve(ctx context.Context, sys dynamo.System, span Span, y0 dynamo.State, ts []float64) (*Solution, error) {
	if err := validate(sys, span, y0, ts); err != nil {
		return nil, err
	}

	f := &counting{sys: sys}
	sol := newSolution(len(ts))
	defer func() { sol.Stats.Evaluations = f.evals }()

	x := y0.Clone()
	t := span.T0
	next := 0
	for next < len(ts) && ts[next] == t {
		sol.add(t, x)
		next++
	}
	if next == len(ts) {
		return sol.succeed(), nil
	}

	dir := span.Direction()
	f0 := f.Derive(x, t)
	if !f0.IsValid() {
		return sol.fail(&dynamo.SimulationError{Time: t, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}), nil
	}

	h := a.opts.InitialStep * dir
	if h == 0 {
		h = a.initialStep(f, x, f0, t, dir)
	}
	h = a.clampMax(h, dir)

	for next < len(ts) {
		if err := canceled(ctx); err != nil {
			return nil, err
		}
		if sol.Stats.Steps+sol.Stats.Rejected >= a.opts.MaxSteps {
			return sol.fail(&dynamo.SimulationError{Step: sol.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepBudget}), nil
		}

		target := ts[next]
		landing := false
		if math.Abs(h) >= math.Abs(target-t) {
			h = target - t
			landing = true
		}
		if !landing && math.Abs(h) < a.minStep(t) {
			return sol.fail(&dynamo.SimulationError{Step: sol.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall}), nil
		}

		xNew, hNext, err := a.stepper.StepAdaptive(f, x, t, h, a.opts.Tolerance)
		if errors.Is(err, dynamo.ErrStepRejected) {
			sol.Stats.Rejected++
			if math.Abs(hNext) < a.minStep(t) {
				return sol.fail(&dynamo.SimulationError{Step: sol.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall}), nil
			}
			h = hNext
			continue
		}
		if !xNew.IsValid() {
			return sol.fail(&dynamo.SimulationError{Step: sol.Stats.Steps, Time: t, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}), nil
		}

		sol.Stats.Steps++
		x = xNew
		if landing {
			t = target
		} else {
			t += h
		}
		for next < len(ts) && ts[next] == t {
			sol.add(t, x)
			next++
		}

		h = a.clampMax(hNext, dir)
	}

	return sol.succeed(), nil
}

func (a *Adaptive) clampMax(h, dir float64) float64 {
	if a.opts.MaxStep > 0 && math.Abs(h) > a.opts.MaxStep {
		return dir * a.opts.MaxStep
	}
	return h
}

func (a *Adaptive) minStep(t float64) float64 {
	spacing := 10 * math.Abs(math.Nextafter(t, math.Inf(1))-t)
	return math.Max(a.opts.MinStep, spacing)
}

// initialStep follows Hairer, Norsett & Wanner, "Solving Ordinary
// Differential Equations I", sec. II.4.
func (a *Adaptive) initialStep(f dynamo.System, x, f0 dynamo.State, t, dir float64) float64 {
	tol := a.opts.Tolerance
	n := float64(len(x))

	rms := func(v dynamo.State, base dynamo.State) float64 {
		sum := 0.0
		for i := range v {
			s := tol.Abs + tol.Rel*math.Abs(base[i])
			if s == 0 {
				s = 1e-300
			}
			sum += (v[i] / s) * (v[i] / s)
		}
		return math.Sqrt(sum / n)
	}

	d0 := rms(x, x)
	d1 := rms(f0, x)
	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}

	x1 := make(dynamo.State, len(x))
	for i := range x {
		x1[i] = x[i] + dir*h0*f0[i]
	}
	f1 := f.Derive(x1, t+dir*h0)
	d2 := rms(f1.Sub(f0), x) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	h := math.Min(100*h0, h1)
	if math.IsNaN(h) || h <= 0 {
		h = 1e-6
	}
	return dir * h
}
