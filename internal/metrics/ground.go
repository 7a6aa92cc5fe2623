package metrics

import (
	"math"

	"github.com/san-kum/rocketsim/internal/dynamo"
)

// GroundContact records the first sample time, after the first one, at which
// the altitude is below zero. Value is NaN until that happens.
type GroundContact struct {
	name    string
	time    float64
	hit     bool
	samples int
}

func NewGroundContact() *GroundContact {
	return &GroundContact{name: "ground_contact"}
}

func (g *GroundContact) Name() string { return g.name }

func (g *GroundContact) Observe(x dynamo.State, t float64) {
	if len(x) < 1 {
		return
	}
	g.samples++
	if g.hit || g.samples == 1 {
		return
	}
	if x[0] < 0 {
		g.time = t
		g.hit = true
	}
}

func (g *GroundContact) Value() float64 {
	if !g.hit {
		return math.NaN()
	}
	return g.time
}

func (g *GroundContact) Hit() bool { return g.hit }

func (g *GroundContact) Reset() {
	g.time = 0
	g.hit = false
	g.samples = 0
}
