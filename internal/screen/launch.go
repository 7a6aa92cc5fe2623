package screen

import (
	"github.com/san-kum/rocketsim/internal/solver"
)

const (
	Title   = "Rocket Simulator"
	Tagline = "Vertical ascent with drag, thrust and a burning mass"
)

// Launch is the opening screen. Its only state is an animation clock.
type Launch struct {
	Title   string
	Tagline string
	frame   int
}

func NewLaunch() *Launch {
	return &Launch{Title: Title, Tagline: Tagline}
}

// Tick advances the decorative animation by one frame.
func (l *Launch) Tick() { l.frame++ }

func (l *Launch) Frame() int { return l.frame }

// Start leaves the launch screen. The new Simulation screen is prefilled
// with fields and solves with s.
func (l *Launch) Start(s solver.Solver, fields [5]string) *Simulation {
	return NewSimulation(s, fields)
}
