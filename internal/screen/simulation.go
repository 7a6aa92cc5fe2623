package screen

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/san-kum/rocketsim/internal/chart"
	"github.com/san-kum/rocketsim/internal/rocket"
	"github.com/san-kum/rocketsim/internal/solver"
)

const (
	MsgInvalidInput = "Please enter valid numeric values."
	MsgIntegration  = "Integration failed. Check the initial values."
	MsgCanceled     = "Simulation canceled."

	MaxFieldLen = 32
)

// State is Alert while a modal message is up and Idle otherwise.
type State int

const (
	Idle State = iota
	Alert
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Alert:
		return "alert"
	default:
		return "unknown"
	}
}

type Field struct {
	Label string
	Text  string
}

// Outcome is what one press of the simulate button produced: a chart or a
// message for the modal box.
type Outcome struct {
	Result  *rocket.Result
	Chart   *chart.Chart
	Message string
	Err     error
}

func (o Outcome) OK() bool { return o.Err == nil }

type Simulation struct {
	Fields [5]Field

	solver  solver.Solver
	focus   int
	state   State
	message string
	result  *rocket.Result
	chart   *chart.Chart
}

func NewSimulation(s solver.Solver, fields [5]string) *Simulation {
	sim := &Simulation{solver: s}
	for i := range sim.Fields {
		sim.Fields[i] = Field{Label: rocket.Fields[i], Text: fields[i]}
	}
	return sim
}

func (s *Simulation) State() State { return s.state }

func (s *Simulation) Focus() int { return s.focus }

func (s *Simulation) SetFocus(i int) {
	if i >= 0 && i < len(s.Fields) {
		s.focus = i
	}
}

func (s *Simulation) FocusNext() { s.focus = (s.focus + 1) % len(s.Fields) }

func (s *Simulation) FocusPrev() { s.focus = (s.focus + len(s.Fields) - 1) % len(s.Fields) }

func (s *Simulation) Insert(r rune) {
	if s.state == Alert {
		return
	}
	f := &s.Fields[s.focus]
	if utf8.RuneCountInString(f.Text) >= MaxFieldLen {
		return
	}
	f.Text += string(r)
}

func (s *Simulation) Backspace() {
	if s.state == Alert {
		return
	}
	f := &s.Fields[s.focus]
	if f.Text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(f.Text)
	f.Text = f.Text[:len(f.Text)-size]
}

func (s *Simulation) Clear() {
	if s.state == Alert {
		return
	}
	s.Fields[s.focus].Text = ""
}

// SetText replaces field i, for front ends that own their own text widgets.
func (s *Simulation) SetText(i int, text string) {
	if s.state == Alert || i < 0 || i >= len(s.Fields) {
		return
	}
	s.Fields[i].Text = text
}

func (s *Simulation) Values() [5]string {
	var v [5]string
	for i, f := range s.Fields {
		v[i] = f.Text
	}
	return v
}

// Submit runs the model on the current field values. On failure the screen
// enters the Alert state and keeps the previous chart, if any.
func (s *Simulation) Submit(ctx context.Context) Outcome {
	if s.state == Alert {
		return Outcome{Message: s.message, Err: errAlertOpen}
	}

	res, err := rocket.Run(ctx, s.solver, s.Values())
	if err != nil {
		s.state = Alert
		s.message = Message(err)
		return Outcome{Message: s.message, Err: err}
	}

	c := res.Chart()
	s.result = res
	s.chart = &c
	return Outcome{Result: res, Chart: &c}
}

var errAlertOpen = errors.New("screen: dismiss the message first")

// Dismiss closes the modal message and returns the screen to Idle.
func (s *Simulation) Dismiss() {
	s.message = ""
	s.state = Idle
}

// Alert returns the modal message while one is shown.
func (s *Simulation) Alert() (string, bool) {
	return s.message, s.state == Alert
}

func (s *Simulation) Chart() *chart.Chart { return s.chart }

func (s *Simulation) Result() *rocket.Result { return s.result }

// Message maps an error from rocket.Run to the text shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, rocket.ErrInvalidInput):
		return MsgInvalidInput
	case errors.Is(err, rocket.ErrIntegrationFailure):
		return MsgIntegration
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MsgCanceled
	default:
		return err.Error()
	}
}
