package chart

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const dpi = 96

// Image renders the chart to a width x height pixel image with a title, axis
// labels, a grid and a legend.
func Image(c Chart, width, height int) (image.Image, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("chart: image size must be positive, got %dx%d", width, height)
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range c.Series {
		pts := make(plotter.XYs, len(c.X))
		for k := range c.X {
			pts[k].X = c.X[k]
			pts[k].Y = s.Values[k]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	// A flat series or a zero-length span leaves an axis with no extent.
	if lo, hi := c.Range(); lo == hi {
		p.Y.Min, p.Y.Max = lo-1, hi+1
	}
	if lo, hi := floats.Min(c.X), floats.Max(c.X); lo == hi {
		p.X.Min, p.X.Max = lo-1, hi+1
	}

	w := vg.Length(width) * vg.Inch / dpi
	h := vg.Length(height) * vg.Inch / dpi
	canvas := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	p.Draw(draw.New(canvas))

	return canvas.Image(), nil
}
