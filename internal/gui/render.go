package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	formX     = 40
	formY     = 120
	fieldW    = 260
	fieldH    = 34
	fieldGap  = 70
	buttonW   = 180
	buttonH   = 44
	modalW    = 460
	modalH    = 180
	chartLeft = 340
	chartTop  = 90
	textSize  = 18
	labelSize = 14
	titleSize = 40
	hintSize  = 14
)

func (a *App) width() int  { return int(rl.GetScreenWidth()) }
func (a *App) height() int { return int(rl.GetScreenHeight()) }

func (a *App) startButton() rl.Rectangle {
	return rl.NewRectangle(float32(a.width()/2-buttonW/2), float32(a.height()-140), buttonW, buttonH)
}

func (a *App) fieldBox(i int) rl.Rectangle {
	return rl.NewRectangle(formX, float32(formY+i*fieldGap+20), fieldW, fieldH)
}

func (a *App) simulateButton() rl.Rectangle {
	return rl.NewRectangle(formX, float32(formY+5*fieldGap+20), buttonW, buttonH)
}

func (a *App) modalBox() rl.Rectangle {
	return rl.NewRectangle(float32(a.width()/2-modalW/2), float32(a.height()/2-modalH/2), modalW, modalH)
}

func (a *App) okButton() rl.Rectangle {
	m := a.modalBox()
	return rl.NewRectangle(m.X+m.Width/2-50, m.Y+m.Height-60, 100, 40)
}

func (a *App) clicked(r rl.Rectangle) bool {
	return rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(rl.GetMousePosition(), r)
}

func (a *App) drawButton(r rl.Rectangle, label string) {
	col := ColAccent
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), r) {
		col = ColSelect
	}
	rl.DrawRectangleLinesEx(r, 2, col)
	tw := a.textWidth(label, textSize)
	a.drawText(label, int(r.X+r.Width/2-tw/2), int(r.Y+r.Height/2-textSize/2), textSize, col)
}

func (a *App) drawLaunch() {
	w, h := a.width(), a.height()

	tw := a.textWidth(a.Launch.Title, titleSize)
	a.drawText(a.Launch.Title, int(float32(w)/2-tw/2), 60, titleSize, ColSelect)
	sw := a.textWidth(a.Launch.Tagline, labelSize)
	a.drawText(a.Launch.Tagline, int(float32(w)/2-sw/2), 110, labelSize, ColText)

	a.drawStars(w, h)
	a.drawRocket(float32(w)/2, float32(h)-180, a.Launch.Frame())
	rl.DrawLine(0, int32(h-170), int32(w), int32(h-170), ColTextDim)

	a.drawButton(a.startButton(), "START")
	a.drawText("ENTER: START  ESC: QUIT", w-260, h-30, hintSize, ColTextDim)
}

// drawStars scatters a fixed pseudo-random starfield; it depends only on the
// window size so it does not flicker between frames.
func (a *App) drawStars(w, h int) {
	for i := 0; i < 120; i++ {
		x := int32((i*7919 + 13) % w)
		y := int32((i*104729 + 31) % (h - 200))
		rl.DrawPixel(x, y, ColTextDim)
	}
}

// drawRocket draws the launch animation: the rocket bobs on the pad while its
// exhaust flickers.
func (a *App) drawRocket(cx, base float32, frame int) {
	t := float64(frame) / 60
	lift := float32(6 * math.Sin(t*2))
	top := base - 160 + lift

	body := rl.NewRectangle(cx-18, top+40, 36, 110)
	rl.DrawRectangleRec(body, ColAccent)
	rl.DrawTriangle(
		rl.NewVector2(cx, top),
		rl.NewVector2(cx-18, top+40),
		rl.NewVector2(cx+18, top+40),
		ColSelect,
	)
	rl.DrawTriangle(
		rl.NewVector2(cx-18, top+110),
		rl.NewVector2(cx-40, top+150),
		rl.NewVector2(cx-18, top+150),
		ColText,
	)
	rl.DrawTriangle(
		rl.NewVector2(cx+18, top+110),
		rl.NewVector2(cx+18, top+150),
		rl.NewVector2(cx+40, top+150),
		ColText,
	)
	rl.DrawCircle(int32(cx), int32(top+70), 8, ColBg)

	flicker := float32(10 + 8*math.Abs(math.Sin(t*17)))
	rl.DrawTriangle(
		rl.NewVector2(cx-12, top+150),
		rl.NewVector2(cx, top+160+flicker),
		rl.NewVector2(cx+12, top+150),
		ColFlame,
	)
}

func (a *App) drawSimulation() {
	w, h := a.width(), a.height()

	a.drawText("Simulation", formX, 40, 28, ColSelect)
	a.drawText(":: "+a.opts.SolverName, formX+190, 50, labelSize, ColText)

	for i, f := range a.Sim.Fields {
		y := formY + i*fieldGap
		a.drawText(f.Label, formX, y, labelSize, ColText)

		box := a.fieldBox(i)
		col := ColTextDim
		text := f.Text
		if i == a.Sim.Focus() {
			col = ColSelect
			if (a.Launch.Frame()/30)%2 == 0 {
				text += "_"
			}
		}
		rl.DrawRectangleLinesEx(box, 1, col)
		a.drawText(text, int(box.X)+8, int(box.Y)+8, textSize, ColSelect)
	}
	a.drawButton(a.simulateButton(), "SIMULATE")

	if a.hasChart {
		rl.DrawTexture(a.chartTex, chartLeft, chartTop, rl.White)
		if res := a.Sim.Result(); res != nil {
			s := res.Summary()
			line := fmt.Sprintf("apogee %.2f m @ %.2f s   max speed %.2f m/s   propellant %.3f kg",
				s.Apogee, s.ApogeeTime, s.MaxSpeed, s.PropellantUsed)
			a.drawText(line, chartLeft, chartTop+int(a.chartTex.Height)+12, labelSize, ColText)
		}
	} else {
		frame := rl.NewRectangle(chartLeft, chartTop, float32(w-chartLeft-40), float32(h-chartTop-80))
		rl.DrawRectangleLinesEx(frame, 1, ColGrid)
		a.drawText("Enter values and press SIMULATE", chartLeft+20, chartTop+20, labelSize, ColTextDim)
	}

	a.drawText("TAB: NEXT FIELD  ENTER: SIMULATE  ESC: BACK", w-440, h-30, hintSize, ColTextDim)
}

func (a *App) drawModal(msg string) {
	rl.DrawRectangle(0, 0, int32(a.width()), int32(a.height()), rl.ColorAlpha(ColBg, 0.7))

	box := a.modalBox()
	rl.DrawRectangleRec(box, ColBg)
	rl.DrawRectangleLinesEx(box, 2, ColError)

	a.drawText("Error", int(box.X)+20, int(box.Y)+16, textSize, ColError)
	tw := a.textWidth(msg, textSize)
	a.drawText(msg, int(box.X+box.Width/2-tw/2), int(box.Y)+64, textSize, ColSelect)
	a.drawButton(a.okButton(), "OK")
}
