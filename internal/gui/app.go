package gui

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/rocketsim/internal/chart"
	"github.com/san-kum/rocketsim/internal/screen"
	"github.com/san-kum/rocketsim/internal/solver"
)

// Palette shared by both views.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColFlame   = rl.NewColor(255, 140, 40, 255)
	ColError   = rl.NewColor(220, 60, 60, 255)
)

type Options struct {
	Solver       solver.Solver
	SolverName   string
	Fields       [5]string
	WindowWidth  int
	WindowHeight int
	ChartWidth   int
	ChartHeight  int
	Logger       log.Logger
}

type App struct {
	Launch *screen.Launch
	Sim    *screen.Simulation
	InMenu bool
	Font   rl.Font

	ctx      context.Context
	opts     Options
	chartTex rl.Texture2D
	hasChart bool
	quit     bool
}

func initWindow(w, h int) {
	rl.InitWindow(int32(w), int32(h), screen.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont tries the Liberation Mono system font and falls back to raylib's
// built-in one.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(ctx context.Context, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	return &App{
		Launch: screen.NewLaunch(),
		InMenu: true,
		Font:   loadFont(),
		ctx:    ctx,
		opts:   opts,
	}
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, opts Options) {
	initWindow(opts.WindowWidth, opts.WindowHeight)
	defer rl.CloseWindow()

	app := NewApp(ctx, opts)
	level.Info(app.opts.Logger).Log("msg", "window opened", "width", opts.WindowWidth, "height", opts.WindowHeight, "solver", opts.SolverName)
	app.RunLoop()
	app.unloadChart()
	level.Info(app.opts.Logger).Log("msg", "window closed")
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		if a.ctx.Err() != nil {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	a.Launch.Tick()
	if a.InMenu {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			a.quit = true
			return
		}
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) || a.clicked(a.startButton()) {
			if a.Sim == nil {
				a.Sim = a.Launch.Start(a.opts.Solver, a.opts.Fields)
			}
			a.InMenu = false
		}
		return
	}

	if _, shown := a.Sim.Alert(); shown {
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyEscape) || a.clicked(a.okButton()) {
			a.Sim.Dismiss()
		}
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		return
	}

	for i := range a.Sim.Fields {
		if a.clicked(a.fieldBox(i)) {
			a.Sim.SetFocus(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) || rl.IsKeyPressed(rl.KeyDown) {
		if rl.IsKeyDown(rl.KeyLeftShift) {
			a.Sim.FocusPrev()
		} else {
			a.Sim.FocusNext()
		}
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		a.Sim.FocusPrev()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		a.Sim.Backspace()
	}
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		a.Sim.Insert(rune(r))
	}

	if rl.IsKeyPressed(rl.KeyEnter) || a.clicked(a.simulateButton()) {
		a.submit()
	}
}

func (a *App) submit() {
	start := time.Now()
	out := a.Sim.Submit(a.ctx)
	if !out.OK() {
		return
	}

	img, err := chart.Image(*out.Chart, a.opts.ChartWidth, a.opts.ChartHeight)
	if err != nil {
		level.Error(a.opts.Logger).Log("msg", "chart render failed", "err", err)
		return
	}
	a.unloadChart()
	rimg := rl.NewImageFromImage(img)
	a.chartTex = rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	a.hasChart = true

	level.Debug(a.opts.Logger).Log(
		"msg", "simulation finished",
		"steps", out.Result.Stats.Steps,
		"rejected", out.Result.Stats.Rejected,
		"evaluations", out.Result.Stats.Evaluations,
		"took", time.Since(start),
	)
}

func (a *App) unloadChart() {
	if a.hasChart {
		rl.UnloadTexture(a.chartTex)
		a.hasChart = false
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawLaunch()
	} else {
		a.drawSimulation()
		if msg, shown := a.Sim.Alert(); shown {
			a.drawModal(msg)
		}
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) textWidth(text string, size int) float32 {
	return rl.MeasureTextEx(a.Font, text, float32(size), 1).X
}
