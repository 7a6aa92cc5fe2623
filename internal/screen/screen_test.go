package screen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/san-kum/rocketsim/internal/dynamo"
	"github.com/san-kum/rocketsim/internal/rocket"
	"github.com/san-kum/rocketsim/internal/solver"
)

var hop = [5]string{"0", "50", "10", "0", "10"}

func newSim(t *testing.T, fields [5]string) *Simulation {
	t.Helper()
	s, err := solver.New("rk45", solver.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return NewLaunch().Start(s, fields)
}

func TestLaunch(t *testing.T) {
	l := NewLaunch()
	if l.Title == "" || l.Tagline == "" {
		t.Error("launch screen needs a title and tagline")
	}
	for i := 0; i < 3; i++ {
		l.Tick()
	}
	if l.Frame() != 3 {
		t.Errorf("expected frame 3, got %d", l.Frame())
	}

	sim := l.Start(nil, hop)
	if sim.State() != Idle {
		t.Errorf("new simulation screen should be idle, got %s", sim.State())
	}
	if sim.Values() != hop {
		t.Errorf("expected prefilled fields, got %v", sim.Values())
	}
	if sim.Fields[2].Label != rocket.Fields[2] {
		t.Errorf("unexpected label %q", sim.Fields[2].Label)
	}
}

func TestSubmitSuccess(t *testing.T) {
	sim := newSim(t, hop)

	out := sim.Submit(context.Background())
	if !out.OK() {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Chart == nil || len(out.Chart.X) != rocket.Samples {
		t.Fatal("expected a chart with every sample")
	}
	if sim.Chart() != out.Chart || sim.Result() != out.Result {
		t.Error("screen should hold the latest chart and result")
	}
	if sim.State() != Idle {
		t.Errorf("expected idle, got %s", sim.State())
	}
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields [5]string
		msg    string
	}{
		{"non-numeric", [5]string{"0", "fast", "10", "0", "10"}, MsgInvalidInput},
		{"empty", [5]string{"", "", "", "", ""}, MsgInvalidInput},
		{"zero mass", [5]string{"0", "50", "0", "0", "10"}, MsgIntegration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newSim(t, tt.fields)

			out := sim.Submit(context.Background())
			if out.OK() {
				t.Fatal("expected failure")
			}
			if out.Message != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, out.Message)
			}
			msg, shown := sim.Alert()
			if !shown || msg != tt.msg {
				t.Errorf("expected modal %q, got %q (shown=%v)", tt.msg, msg, shown)
			}
			if sim.State() != Alert {
				t.Errorf("expected alert, got %s", sim.State())
			}

			sim.Dismiss()
			if sim.State() != Idle {
				t.Errorf("expected idle after dismiss, got %s", sim.State())
			}
			if _, shown := sim.Alert(); shown {
				t.Error("modal should be gone after dismiss")
			}
		})
	}
}

func TestAlertIsModal(t *testing.T) {
	sim := newSim(t, [5]string{"x", "50", "10", "0", "10"})
	sim.Submit(context.Background())

	sim.Insert('1')
	sim.Backspace()
	sim.Clear()
	sim.SetText(0, "0")
	if sim.Fields[0].Text != "x" {
		t.Errorf("edits must be ignored while the alert is up, got %q", sim.Fields[0].Text)
	}

	out := sim.Submit(context.Background())
	if out.OK() || out.Message != MsgInvalidInput {
		t.Errorf("submit during alert should keep the message, got %+v", out)
	}

	sim.Dismiss()
	sim.SetFocus(0)
	sim.Clear()
	sim.Insert('0')
	if out := sim.Submit(context.Background()); !out.OK() {
		t.Errorf("expected success after fixing the field, got %v", out.Err)
	}
}

func TestFailureKeepsPreviousChart(t *testing.T) {
	sim := newSim(t, hop)
	first := sim.Submit(context.Background())

	sim.SetText(2, "0")
	sim.Submit(context.Background())
	sim.Dismiss()

	if sim.Chart() != first.Chart {
		t.Error("a failed run should not replace the shown chart")
	}
}

func TestEditing(t *testing.T) {
	sim := NewSimulation(nil, [5]string{})

	for _, r := range "12.5" {
		sim.Insert(r)
	}
	sim.Backspace()
	if sim.Fields[0].Text != "12." {
		t.Errorf("expected 12., got %q", sim.Fields[0].Text)
	}

	sim.FocusNext()
	sim.Insert('é')
	sim.Backspace()
	if sim.Fields[1].Text != "" {
		t.Errorf("backspace should remove a whole rune, got %q", sim.Fields[1].Text)
	}
	sim.Backspace()

	sim.FocusPrev()
	sim.FocusPrev()
	if sim.Focus() != 4 {
		t.Errorf("focus should wrap to 4, got %d", sim.Focus())
	}

	sim.SetFocus(9)
	if sim.Focus() != 4 {
		t.Errorf("out of range focus should be ignored, got %d", sim.Focus())
	}

	for i := 0; i < MaxFieldLen+5; i++ {
		sim.Insert('9')
	}
	if len(sim.Fields[4].Text) != MaxFieldLen {
		t.Errorf("field should stop at %d runes, got %d", MaxFieldLen, len(sim.Fields[4].Text))
	}
}

type failingSolver struct{ err error }

func (f failingSolver) Solve(context.Context, dynamo.System, solver.Span, dynamo.State, []float64) (*solver.Solution, error) {
	return nil, f.err
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&rocket.InputError{Field: "x", Text: "y"}, MsgInvalidInput},
		{&rocket.IntegrationError{Message: "nan"}, MsgIntegration},
		{fmt.Errorf("wrapped: %w", context.Canceled), MsgCanceled},
		{errors.New("disk on fire"), "disk on fire"},
	}

	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSubmitCanceled(t *testing.T) {
	sim := NewSimulation(failingSolver{err: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, context.Canceled)}, hop)

	out := sim.Submit(context.Background())
	if out.Message != MsgCanceled {
		t.Errorf("expected %q, got %q", MsgCanceled, out.Message)
	}
}
