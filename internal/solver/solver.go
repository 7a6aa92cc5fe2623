package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

var ErrInvalidRequest = errors.New("solver: invalid request")

type Solver interface {
	Solve(ctx context.Context, sys dynamo.System, span Span, y0 dynamo.State, ts []float64) (*Solution, error)
}

type Span struct {
	T0 float64
	Tf float64
}

// Direction is +1 for forward spans, -1 for reversed ones and 0 when the
// span has zero length.
func (s Span) Direction() float64 {
	switch {
	case s.Tf > s.T0:
		return 1
	case s.Tf < s.T0:
		return -1
	default:
		return 0
	}
}

func (s Span) contains(t float64) bool {
	lo, hi := math.Min(s.T0, s.Tf), math.Max(s.T0, s.Tf)
	return t >= lo && t <= hi
}

type Stats struct {
	Evaluations int
	Steps       int
	Rejected    int
}

type Solution struct {
	Times   []float64
	States  []dynamo.State
	Success bool
	Message string
	Err     error
	Stats   Stats
}

func newSolution(n int) *Solution {
	return &Solution{
		Times:  make([]float64, 0, n),
		States: make([]dynamo.State, 0, n),
	}
}

func (s *Solution) add(t float64, x dynamo.State) {
	s.Times = append(s.Times, t)
	s.States = append(s.States, x.Clone())
}

func (s *Solution) fail(err error) *Solution {
	s.Success = false
	s.Err = err
	s.Message = err.Error()
	return s
}

func (s *Solution) succeed() *Solution {
	s.Success = true
	s.Message = "integration reached the last sample"
	return s
}

// Column returns component i of every row.
func (s *Solution) Column(i int) []float64 {
	col := make([]float64, len(s.States))
	for k, row := range s.States {
		col[k] = row[i]
	}
	return col
}

type Options struct {
	Tolerance   dynamo.Tolerance `yaml:"tolerance"`
	InitialStep float64          `yaml:"initial_step"`
	MinStep     float64          `yaml:"min_step"`
	MaxStep     float64          `yaml:"max_step"`
	MaxSteps    int              `yaml:"max_steps"`
	Substeps    int              `yaml:"substeps"`
}

func DefaultOptions() Options {
	return Options{
		Tolerance: dynamo.Tolerance{Rel: 1e-3, Abs: 1e-6},
		MaxSteps:  100000,
		Substeps:  10,
	}
}

func (o Options) Validate() error {
	if err := o.Tolerance.Validate(); err != nil {
		return err
	}
	if o.InitialStep < 0 || o.MinStep < 0 || o.MaxStep < 0 {
		return fmt.Errorf("step bounds must not be negative")
	}
	if o.MaxStep > 0 && o.MinStep > o.MaxStep {
		return fmt.Errorf("min_step %g exceeds max_step %g", o.MinStep, o.MaxStep)
	}
	if o.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", o.MaxSteps)
	}
	if o.Substeps <= 0 {
		return fmt.Errorf("substeps must be positive, got %d", o.Substeps)
	}
	return nil
}

func validate(sys dynamo.System, span Span, y0 dynamo.State, ts []float64) error {
	if math.IsNaN(span.T0) || math.IsNaN(span.Tf) || math.IsInf(span.T0, 0) || math.IsInf(span.Tf, 0) {
		return fmt.Errorf("%w: span [%g, %g] is not finite", ErrInvalidRequest, span.T0, span.Tf)
	}
	if len(y0) != sys.StateDim() {
		return fmt.Errorf("%w: %w: got %d, want %d", ErrInvalidRequest, dynamo.ErrDimensionMismatch, len(y0), sys.StateDim())
	}
	if len(ts) == 0 {
		return fmt.Errorf("%w: no sample times", ErrInvalidRequest)
	}

	dir := span.Direction()
	for i, t := range ts {
		if !span.contains(t) {
			return fmt.Errorf("%w: sample %d (t=%g) outside span [%g, %g]", ErrInvalidRequest, i, t, span.T0, span.Tf)
		}
		if i > 0 && (t-ts[i-1])*dir < 0 {
			return fmt.Errorf("%w: samples must follow the span direction at index %d", ErrInvalidRequest, i)
		}
	}
	return nil
}

// counting wraps a system and counts right-hand side evaluations.
type counting struct {
	sys   dynamo.System
	evals int
}

func (c *counting) Derive(x dynamo.State, t float64) dynamo.State {
	c.evals++
	return c.sys.Derive(x, t)
}

func (c *counting) StateDim() int { return c.sys.StateDim() }

func canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
	default:
		return nil
	}
}
