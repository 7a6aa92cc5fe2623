package metrics

import (
	"math"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// Energy is the total mechanical energy m*(|g|*y + v^2/2) in joules at the
// latest sample, with y measured from zero altitude.
type Energy struct {
	name    string
	gravity float64
	energy  float64
	samples int
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: math.Abs(gravity),
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	if len(x) < 3 {
		return
	}
	y, v, m := x[0], x[1], x[2]
	e.energy = m * (e.gravity*y + 0.5*v*v)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.energy
}

func (e *Energy) Reset() {
	e.energy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of total mechanical energy from
// the first sample. Thrust and drag move it in a real flight, so compare it
// across solvers rather than against zero.
type EnergyDrift struct {
	name     string
	energy   *Energy
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(gravity float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: NewEnergy(gravity),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	e.energy.Observe(x, t)
	current := e.energy.Value()

	if e.samples == 0 {
		e.initial = current
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(current-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.energy.Reset()
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
