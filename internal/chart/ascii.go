package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Orange,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Purple,
}

// ASCII draws every series on one set of axes. width and height are in
// terminal cells for the plot area; zero leaves asciigraph's defaults.
func ASCII(c Chart, width, height int) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	data := make([][]float64, len(c.Series))
	colors := make([]asciigraph.AnsiColor, len(c.Series))
	for i, s := range c.Series {
		data[i] = s.Values
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	opts := []asciigraph.Option{
		asciigraph.Caption(caption(c)),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(c.names()...),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if height > 0 {
		opts = append(opts, asciigraph.Height(height))
	}

	return asciigraph.PlotMany(data, opts...), nil
}

func caption(c Chart) string {
	first, last := c.X[0], c.X[len(c.X)-1]
	text := fmt.Sprintf("%s: %s from %.4g to %.4g", c.Title, c.XLabel, first, last)
	if c.YLabel != "" {
		text += ", " + c.YLabel
	}
	return text
}
