package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rocketsim/internal/screen"
	"github.com/san-kum/rocketsim/internal/solver"
)

func testModel(t *testing.T, fields [5]string) model {
	t.Helper()
	s, err := solver.New("rk45", solver.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return newModel(context.Background(), Options{Solver: s, SolverName: "rk45", Fields: fields})
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	clearKey  = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func TestLaunchToSimulation(t *testing.T) {
	m := testModel(t, [5]string{"0", "50", "10", "0", "10"})

	if !strings.Contains(m.View(), screen.Title) {
		t.Error("launch view should show the title")
	}

	next, _ := m.Update(tickMsg{})
	m = next.(model)
	if m.launch.Frame() != 1 {
		t.Errorf("tick should advance the animation, frame=%d", m.launch.Frame())
	}

	m = press(m, enter)
	if m.view != viewSim {
		t.Fatal("enter should open the simulation screen")
	}
	if !strings.Contains(m.View(), "Initial mass (kg)") {
		t.Error("simulation view should list the fields")
	}
}

func TestSimulateDrawsChart(t *testing.T) {
	m := testModel(t, [5]string{"0", "50", "10", "0", "10"})
	m = press(m, enter, enter)

	if m.plot == "" {
		t.Fatal("expected a rendered chart")
	}
	view := m.View()
	for _, want := range []string{"Rocket ODE solution", "Position y (m)", "apogee"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInvalidInputShowsModal(t *testing.T) {
	m := testModel(t, [5]string{"0", "50", "10", "0", "10"})
	m = press(m, enter, clearKey, runes("abc"), enter)

	if !strings.Contains(m.View(), screen.MsgInvalidInput) {
		t.Fatal("expected the invalid input message")
	}

	// Typing is ignored until the message is dismissed.
	m = press(m, runes("7"))
	if m.sim.Fields[0].Text != "abc" {
		t.Errorf("edit during modal changed field to %q", m.sim.Fields[0].Text)
	}

	m = press(m, enter)
	if _, shown := m.sim.Alert(); shown {
		t.Error("enter should dismiss the modal")
	}
}

func TestEditingKeys(t *testing.T) {
	m := testModel(t, [5]string{})
	m = press(m, enter, runes("12"), backspace, tab, runes("-3"))

	if got := m.sim.Values(); got[0] != "1" || got[1] != "-3" {
		t.Errorf("unexpected fields %q", got)
	}

	m = press(m, esc)
	if m.view != viewLaunch {
		t.Error("esc should return to the launch screen")
	}
	m = press(m, enter)
	if m.sim.Values()[1] != "-3" {
		t.Error("fields should survive a trip back to the launch screen")
	}
}

func TestIntegrationFailureModal(t *testing.T) {
	m := testModel(t, [5]string{"0", "50", "0", "0", "10"})
	m = press(m, enter, enter)

	if !strings.Contains(m.View(), screen.MsgIntegration) {
		t.Error("expected the integration failure message")
	}
}

func TestDrawRocketStaysInBounds(t *testing.T) {
	for frame := 0; frame < 200; frame++ {
		c := newCanvas(20, 10)
		drawRocket(c, frame)
		for _, row := range c.cells {
			if len(row) != 20 {
				t.Fatalf("frame %d: row width %d", frame, len(row))
			}
		}
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("unknown theme should fall back to cyberpunk")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames should list every theme")
	}
}

func TestSummaryUsesAccent(t *testing.T) {
	for _, th := range Themes {
		st := newStyles(th)
		if got := st.summary.GetForeground(); got != th.Accent {
			t.Errorf("%s: summary color %v, want %v", th.Name, got, th.Accent)
		}
	}
}
