package metrics

import (
	"math"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// Apogee tracks the highest altitude seen and when it was reached. Ties keep
// the earliest sample.
type Apogee struct {
	name    string
	height  float64
	time    float64
	samples int
}

func NewApogee() *Apogee {
	return &Apogee{name: "apogee", height: math.Inf(-1)}
}

func (a *Apogee) Name() string { return a.name }

func (a *Apogee) Observe(x dynamo.State, t float64) {
	if len(x) < 1 {
		return
	}
	if x[0] > a.height {
		a.height = x[0]
		a.time = t
	}
	a.samples++
}

func (a *Apogee) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.height
}

func (a *Apogee) Time() float64 { return a.time }

func (a *Apogee) Reset() {
	a.height = math.Inf(-1)
	a.time = 0
	a.samples = 0
}

type MaxSpeed struct {
	name  string
	speed float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	m.speed = math.Max(m.speed, math.Abs(x[1]))
}

func (m *MaxSpeed) Value() float64 { return m.speed }

func (m *MaxSpeed) Reset() { m.speed = 0 }
