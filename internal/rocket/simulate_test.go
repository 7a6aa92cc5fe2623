package rocket_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rocketsim/internal/dynamo"
	"github.com/san-kum/rocketsim/internal/rocket"
	"github.com/san-kum/rocketsim/internal/solver"
)

// spySolver records calls and returns a canned solution.
type spySolver struct {
	calls int
	span  solver.Span
	y0    dynamo.State
	ts    []float64
	sol   *solver.Solution
	err   error
}

func (s *spySolver) Solve(ctx context.Context, sys dynamo.System, span solver.Span, y0 dynamo.State, ts []float64) (*solver.Solution, error) {
	s.calls++
	s.span, s.y0, s.ts = span, y0.Clone(), ts
	return s.sol, s.err
}

func mustSolver(name string) solver.Solver {
	s, err := solver.New(name, solver.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return s
}

var hop = [5]string{"0", "50", "10", "0", "10"}

var _ = Describe("Run", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with non-numeric input", func() {
		DescribeTable("rejects the request before integrating",
			func(fields [5]string, field string) {
				spy := &spySolver{}
				res, err := rocket.Run(ctx, spy, fields)

				Expect(res).To(BeNil())
				Expect(err).To(MatchError(rocket.ErrInvalidInput))
				Expect(errors.Is(err, rocket.ErrIntegrationFailure)).To(BeFalse())

				var ie *rocket.InputError
				Expect(errors.As(err, &ie)).To(BeTrue())
				Expect(ie.Field).To(Equal(field))
				Expect(spy.calls).To(BeZero())
			},
			Entry("altitude", [5]string{"abc", "50", "10", "0", "10"}, rocket.Fields[0]),
			Entry("velocity", [5]string{"0", "", "10", "0", "10"}, rocket.Fields[1]),
			Entry("mass", [5]string{"0", "50", "1O", "0", "10"}, rocket.Fields[2]),
			Entry("start time", [5]string{"0", "50", "10", "now", "10"}, rocket.Fields[3]),
			Entry("end time", [5]string{"0", "50", "10", "0", "10s"}, rocket.Fields[4]),
		)
	})

	Context("with the reference launch", func() {
		It("hands the solver the initial state, span and a 500 point grid", func() {
			spy := &spySolver{err: errors.New("stop")}
			_, _ = rocket.Run(ctx, spy, hop)

			Expect(spy.calls).To(Equal(1))
			Expect(spy.span).To(Equal(solver.Span{T0: 0, Tf: 10}))
			Expect(spy.y0).To(Equal(dynamo.State{0, 50, 10}))
			Expect(spy.ts).To(HaveLen(rocket.Samples))
			Expect(spy.ts[0]).To(Equal(0.0))
			Expect(spy.ts[rocket.Samples-1]).To(Equal(10.0))
		})

		It("returns exactly 500 samples spanning [0, 10]", func() {
			res, err := rocket.Run(ctx, mustSolver("rk45"), hop)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Success).To(BeTrue())
			Expect(res.Times).To(HaveLen(500))
			Expect(res.Position).To(HaveLen(500))
			Expect(res.Velocity).To(HaveLen(500))
			Expect(res.Mass).To(HaveLen(500))
			Expect(res.Times[0]).To(Equal(0.0))
			Expect(res.Times[499]).To(Equal(10.0))
			Expect(res.Position[0]).To(Equal(0.0))
			Expect(res.Velocity[0]).To(Equal(50.0))
		})

		It("is deterministic", func() {
			a, err := rocket.Run(ctx, mustSolver("rk45"), hop)
			Expect(err).NotTo(HaveOccurred())
			b, err := rocket.Run(ctx, mustSolver("rk45"), hop)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Times).To(Equal(a.Times))
			Expect(b.Position).To(Equal(a.Position))
			Expect(b.Velocity).To(Equal(a.Velocity))
			Expect(b.Mass).To(Equal(a.Mass))
		})

		It("burns mass linearly", func() {
			res, err := rocket.Run(ctx, mustSolver("rk45"), hop)
			Expect(err).NotTo(HaveOccurred())

			for i, t := range res.Times {
				Expect(res.Mass[i]).To(BeNumerically("~", 10+rocket.BurnRate*t, 1e-9))
			}
		})

		It("rises and then falls back", func() {
			res, err := rocket.Run(ctx, mustSolver("rk45"), hop)
			Expect(err).NotTo(HaveOccurred())

			s := res.Summary()
			Expect(s.Apogee).To(BeNumerically(">", 0))
			Expect(s.ApogeeTime).To(BeNumerically(">", 0))
			Expect(s.ApogeeTime).To(BeNumerically("<", 10))
			Expect(res.Velocity[499]).To(BeNumerically("<", 0))
			Expect(s.PropellantUsed).To(BeNumerically("~", 1.0, 1e-9))
		})

		DescribeTable("agrees across solver backends",
			func(name string) {
				ref, err := rocket.Run(ctx, mustSolver("rk45"), hop)
				Expect(err).NotTo(HaveOccurred())
				res, err := rocket.Run(ctx, mustSolver(name), hop)
				Expect(err).NotTo(HaveOccurred())

				Expect(res.Times).To(Equal(ref.Times))
				for i := range ref.Times {
					Expect(res.Position[i]).To(BeNumerically("~", ref.Position[i], 0.5))
					Expect(res.Velocity[i]).To(BeNumerically("~", ref.Velocity[i], 0.5))
					Expect(res.Mass[i]).To(BeNumerically("~", ref.Mass[i], 1e-6))
				}
			},
			Entry("ode", "ode"),
			Entry("rk4", "rk4"),
			Entry("euler", "euler"),
		)
	})

	Context("with a reversed time span", func() {
		It("integrates backwards from the start time", func() {
			res, err := rocket.Run(ctx, mustSolver("rk45"), [5]string{"0", "50", "10", "10", "0"})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Success).To(BeTrue())
			Expect(res.Times).To(HaveLen(500))
			Expect(res.Times[0]).To(Equal(10.0))
			Expect(res.Times[499]).To(Equal(0.0))
			Expect(res.Mass[499]).To(BeNumerically("~", 11, 1e-9))
		})

		It("retraces a forward run", func() {
			fwd, err := rocket.Run(ctx, mustSolver("rk45"), hop)
			Expect(err).NotTo(HaveOccurred())

			end := rocket.Params{
				Altitude:  fwd.Position[499],
				Velocity:  fwd.Velocity[499],
				Mass:      fwd.Mass[499],
				StartTime: 10,
				EndTime:   0,
			}
			back, err := rocket.Simulate(ctx, mustSolver("rk45"), end)
			Expect(err).NotTo(HaveOccurred())

			Expect(back.Position[499]).To(BeNumerically("~", 0, 0.5))
			Expect(back.Velocity[499]).To(BeNumerically("~", 50, 0.5))
		})
	})

	Context("with a zero length span", func() {
		It("repeats the initial state", func() {
			res, err := rocket.Run(ctx, mustSolver("rk45"), [5]string{"5", "1", "2", "3", "3"})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Times).To(HaveLen(500))
			Expect(res.Position).To(HaveEach(5.0))
			Expect(res.Mass).To(HaveEach(2.0))
		})
	})

	Context("when thrust and drag are negligible", func() {
		It("matches free fall", func() {
			p := rocket.Params{Altitude: 100, Velocity: 0, Mass: 1e9, StartTime: 0, EndTime: 4}
			res, err := rocket.Simulate(ctx, mustSolver("rk45"), p)
			Expect(err).NotTo(HaveOccurred())

			for i, t := range res.Times {
				Expect(res.Position[i]).To(BeNumerically("~", 100+0.5*rocket.Gravity*t*t, 1e-4))
				Expect(res.Velocity[i]).To(BeNumerically("~", rocket.Gravity*t, 1e-4))
			}
		})
	})

	Context("when the integration cannot proceed", func() {
		DescribeTable("reports an integration failure for zero mass",
			func(name string) {
				res, err := rocket.Run(ctx, mustSolver(name), [5]string{"0", "50", "0", "0", "10"})

				Expect(res).To(BeNil())
				Expect(err).To(MatchError(rocket.ErrIntegrationFailure))
				Expect(errors.Is(err, rocket.ErrInvalidInput)).To(BeFalse())
			},
			Entry("rk45", "rk45"),
			Entry("ode", "ode"),
			Entry("rk4", "rk4"),
			Entry("euler", "euler"),
		)

		It("wraps a solver error", func() {
			cause := errors.New("boom")
			_, err := rocket.Run(ctx, &spySolver{err: cause}, hop)

			Expect(err).To(MatchError(rocket.ErrIntegrationFailure))
			Expect(err).To(MatchError(cause))
		})

		It("rejects an unsuccessful solution", func() {
			spy := &spySolver{sol: &solver.Solution{Success: false, Message: "step size underflow"}}
			_, err := rocket.Run(ctx, spy, hop)

			var ie *rocket.IntegrationError
			Expect(errors.As(err, &ie)).To(BeTrue())
			Expect(ie.Message).To(Equal("step size underflow"))
		})

		It("rejects a successful solution without rows", func() {
			spy := &spySolver{sol: &solver.Solution{Success: true}}
			_, err := rocket.Run(ctx, spy, hop)

			Expect(err).To(MatchError(rocket.ErrIntegrationFailure))
		})

		It("treats an infinite end time as a failed integration", func() {
			_, err := rocket.Run(ctx, mustSolver("rk45"), [5]string{"0", "50", "10", "0", "inf"})

			Expect(err).To(MatchError(rocket.ErrIntegrationFailure))
		})
	})

	Context("when the context is canceled", func() {
		It("returns the cancellation rather than a failure", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := rocket.Run(cctx, mustSolver("rk45"), hop)
			Expect(err).To(MatchError(context.Canceled))
			Expect(errors.Is(err, rocket.ErrIntegrationFailure)).To(BeFalse())
		})
	})
})

var _ = Describe("Model", func() {
	It("has a non-finite derivative as mass approaches zero", func() {
		for _, m := range []float64{1e-3, 1e-100, 1e-300} {
			dx := rocket.Model{}.Derive(dynamo.State{0, 50, m}, 0)
			Expect(math.Abs(dx[1])).To(BeNumerically(">", 1/m))
		}
		dx := rocket.Model{}.Derive(dynamo.State{0, 50, 0}, 0)
		Expect(dx.IsValid()).To(BeFalse())
	})
})
