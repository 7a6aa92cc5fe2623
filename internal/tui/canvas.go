package tui

import "strings"

// canvas is a grid of runes for the launch animation.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *canvas) text(x, y int, s string) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r)
	}
}

func (c *canvas) line(x1, y1, x2, y2 int, r rune) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var rocketArt = []string{
	" /\\ ",
	" || ",
	" || ",
	"/||\\",
}

var flames = []string{"'||'", " ** ", "'**'", " '' "}

// drawRocket paints the launch animation for one frame: a rocket climbing
// from the pad and wrapping around, with a flickering exhaust and a trail.
func drawRocket(c *canvas, frame int) {
	ground := c.h - 1
	c.line(0, ground, c.w-1, ground, '═')

	travel := ground + len(rocketArt)
	top := ground - len(rocketArt) - (frame/2)%travel
	x := c.w/2 - 2

	for i, row := range rocketArt {
		c.text(x, top+i, row)
	}
	c.text(x, top+len(rocketArt), flames[frame%len(flames)])
	for y := top + len(rocketArt) + 1; y < ground; y += 2 {
		c.set(x+1+(y+frame)%2, y, '·')
	}
}
