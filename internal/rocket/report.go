package rocket

import (
	"fmt"
	"strings"

	"github.com/san-kum/rocketsim/internal/chart"
	"github.com/san-kum/rocketsim/internal/dynamo"
	"github.com/san-kum/rocketsim/internal/metrics"
	"github.com/san-kum/rocketsim/internal/solver"
)

const (
	ChartTitle  = "Rocket ODE solution"
	ChartXLabel = "Time (s)"
	ChartYLabel = "Values"
)

// Chart describes the result as three series against time.
func (r *Result) Chart() chart.Chart {
	return chart.Chart{
		Title:  ChartTitle,
		XLabel: ChartXLabel,
		YLabel: ChartYLabel,
		X:      r.Times,
		Series: []chart.Series{
			{Name: "Position y (m)", Values: r.Position},
			{Name: "Velocity y (m/s)", Values: r.Velocity},
			{Name: "Mass (kg)", Values: r.Mass},
		},
	}
}

type Summary struct {
	Apogee         float64
	ApogeeTime     float64
	MaxSpeed       float64
	PropellantUsed float64
	GroundContact  float64
	Landed         bool
	FinalEnergy    float64
	EnergyChange   float64
	Stats          solver.Stats
}

func (r *Result) Summary() Summary {
	apogee := metrics.NewApogee()
	speed := metrics.NewMaxSpeed()
	propellant := metrics.NewPropellantUsed()
	ground := metrics.NewGroundContact()
	energy := metrics.NewEnergy(Gravity)
	drift := metrics.NewEnergyDrift(Gravity)

	observe([]dynamo.Metric{apogee, speed, propellant, ground, energy, drift}, r)

	return Summary{
		Apogee:         apogee.Value(),
		ApogeeTime:     apogee.Time(),
		MaxSpeed:       speed.Value(),
		PropellantUsed: propellant.Value(),
		GroundContact:  ground.Value(),
		Landed:         ground.Hit(),
		FinalEnergy:    energy.Value(),
		EnergyChange:   drift.Value(),
		Stats:          r.Stats,
	}
}

func observe(ms []dynamo.Metric, r *Result) {
	for i, t := range r.Times {
		x := r.State(i)
		for _, m := range ms {
			m.Observe(x, t)
		}
	}
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "apogee:          %.3f m at t=%.3f s\n", s.Apogee, s.ApogeeTime)
	fmt.Fprintf(&b, "max speed:       %.3f m/s\n", s.MaxSpeed)
	fmt.Fprintf(&b, "propellant used: %.3f kg\n", s.PropellantUsed)
	if s.Landed {
		fmt.Fprintf(&b, "ground contact:  t=%.3f s\n", s.GroundContact)
	} else {
		b.WriteString("ground contact:  none\n")
	}
	fmt.Fprintf(&b, "final energy:    %.3f J\n", s.FinalEnergy)
	fmt.Fprintf(&b, "energy change:   %.2f%% max from start\n", 100*s.EnergyChange)
	fmt.Fprintf(&b, "solver:          %d steps, %d rejected, %d evaluations\n", s.Stats.Steps, s.Stats.Rejected, s.Stats.Evaluations)
	return b.String()
}
