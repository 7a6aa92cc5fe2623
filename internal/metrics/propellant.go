package metrics

import "github.com/san-kum/rocketsim/internal/dynamo"

// PropellantUsed is the mass lost between the first and the latest sample.
// On a reversed span it comes out negative.
type PropellantUsed struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewPropellantUsed() *PropellantUsed {
	return &PropellantUsed{name: "propellant_used"}
}

func (p *PropellantUsed) Name() string { return p.name }

func (p *PropellantUsed) Observe(x dynamo.State, t float64) {
	if len(x) < 3 {
		return
	}
	if p.samples == 0 {
		p.initial = x[2]
	}
	p.current = x[2]
	p.samples++
}

func (p *PropellantUsed) Value() float64 {
	return p.initial - p.current
}

func (p *PropellantUsed) Reset() {
	p.initial = 0
	p.current = 0
	p.samples = 0
}
