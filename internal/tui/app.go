package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/rocketsim/internal/chart"
	"github.com/san-kum/rocketsim/internal/screen"
	"github.com/san-kum/rocketsim/internal/solver"
)

type Options struct {
	Solver     solver.Solver
	SolverName string
	Fields     [5]string
	Theme      string
	Logger     log.Logger
}

type view int

const (
	viewLaunch view = iota
	viewSim
)

type model struct {
	ctx    context.Context
	opts   Options
	styles styles

	view   view
	launch *screen.Launch
	sim    *screen.Simulation
	plot   string

	width  int
	height int
}

func newModel(ctx context.Context, opts Options) model {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	return model{
		ctx:    ctx,
		opts:   opts,
		styles: newStyles(GetTheme(opts.Theme)),
		view:   viewLaunch,
		launch: screen.NewLaunch(),
		width:  80,
		height: 24,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == viewLaunch {
			return m.launchKey(msg)
		}
		return m.simKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.redraw()
		return m, nil
	case tickMsg:
		if m.view != viewLaunch {
			return m, nil
		}
		m.launch.Tick()
		return m, tick()
	}
	return m, nil
}

func (m model) launchKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter", " ", "s":
		if m.sim == nil {
			m.sim = m.launch.Start(m.opts.Solver, m.opts.Fields)
		}
		m.view = viewSim
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if _, shown := m.sim.Alert(); shown {
		switch msg.String() {
		case "enter", "esc", " ":
			m.sim.Dismiss()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.submit()
	case tea.KeyTab, tea.KeyDown:
		m.sim.FocusNext()
	case tea.KeyShiftTab, tea.KeyUp:
		m.sim.FocusPrev()
	case tea.KeyBackspace:
		m.sim.Backspace()
	case tea.KeyCtrlU:
		m.sim.Clear()
	case tea.KeyEsc:
		m.view = viewLaunch
		return m, tea.Batch(tea.ClearScreen, tick())
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			m.sim.Insert(r)
		}
	}
	return m, nil
}

func (m *model) submit() {
	start := time.Now()
	out := m.sim.Submit(m.ctx)
	if !out.OK() {
		return
	}
	level.Debug(m.opts.Logger).Log(
		"msg", "simulation finished",
		"solver", m.opts.SolverName,
		"steps", out.Result.Stats.Steps,
		"rejected", out.Result.Stats.Rejected,
		"evaluations", out.Result.Stats.Evaluations,
		"took", time.Since(start),
	)
	m.redraw()
}

func (m *model) chartSize() (int, int) {
	w := m.width - 14
	h := m.height - 18
	if w < 30 {
		w = 30
	}
	if h < 6 {
		h = 6
	}
	return w, h
}

// redraw re-renders the held chart at the current terminal size.
func (m *model) redraw() {
	if m.sim == nil || m.sim.Chart() == nil {
		return
	}
	w, h := m.chartSize()
	plot, err := chart.ASCII(*m.sim.Chart(), w, h)
	if err != nil {
		m.plot = err.Error()
		return
	}
	m.plot = plot
}

func (m model) View() string {
	if m.view == viewLaunch {
		return m.viewLaunch()
	}
	return m.viewSim()
}

func (m model) viewLaunch() string {
	var b strings.Builder

	b.WriteString("\n   " + m.styles.title.Render(m.launch.Title) + "\n")
	b.WriteString("   " + m.styles.label.Render(m.launch.Tagline) + "\n\n")

	c := newCanvas(40, 14)
	drawRocket(c, m.launch.Frame())
	for _, row := range strings.Split(strings.TrimRight(c.String(), "\n"), "\n") {
		b.WriteString("   " + m.styles.value.Render(row) + "\n")
	}

	b.WriteString("\n   " + m.styles.focused.Render("[ START ]") + "\n\n")
	b.WriteString(m.styles.hint.Render("   enter start   q quit") + "\n")
	return b.String()
}

func (m model) viewSim() string {
	var b strings.Builder

	b.WriteString("\n   " + m.styles.title.Render("Simulation") + "  " + m.styles.label.Render("solver "+m.opts.SolverName) + "\n\n")

	for i, f := range m.sim.Fields {
		label := fmt.Sprintf("%-24s", f.Label)
		if i == m.sim.Focus() {
			b.WriteString("   " + m.styles.focused.Render("▸ "+label) + m.styles.value.Render(f.Text+"▋") + "\n")
		} else {
			b.WriteString("     " + m.styles.label.Render(label) + m.styles.value.Render(f.Text) + "\n")
		}
	}
	b.WriteString("\n")

	if msg, shown := m.sim.Alert(); shown {
		box := m.styles.modal.Render(msg + "\n\n" + m.styles.focused.Render("[ OK ]"))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box) + "\n")
		return b.String()
	}

	if m.plot != "" {
		b.WriteString(m.styles.panel.Render(m.plot) + "\n")
		if res := m.sim.Result(); res != nil {
			s := res.Summary()
			line := fmt.Sprintf("apogee %.2f m @ %.2f s   max speed %.2f m/s   propellant %.3f kg",
				s.Apogee, s.ApogeeTime, s.MaxSpeed, s.PropellantUsed)
			b.WriteString("   " + m.styles.summary.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.hint.Render("   tab/↑↓ field   enter simulate   ctrl+u clear   esc back   ctrl+c quit") + "\n")
	return b.String()
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)
	level.Info(m.opts.Logger).Log("msg", "starting terminal ui", "solver", opts.SolverName)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}

	level.Info(m.opts.Logger).Log("msg", "terminal ui closed")
	return nil
}
