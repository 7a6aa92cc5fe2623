// Package chart renders a multi-series line chart either as text for a
// terminal or as an in-memory raster image.
package chart

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrEmpty = errors.New("chart: nothing to draw")

type Series struct {
	Name   string
	Values []float64
}

// Chart is a renderer-neutral description. Every series is drawn against X.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series
}

func (c Chart) Validate() error {
	if len(c.X) == 0 || len(c.Series) == 0 {
		return ErrEmpty
	}
	for _, s := range c.Series {
		if len(s.Values) != len(c.X) {
			return fmt.Errorf("chart: series %q has %d values for %d x points", s.Name, len(s.Values), len(c.X))
		}
	}
	return nil
}

func (c Chart) names() []string {
	names := make([]string, len(c.Series))
	for i, s := range c.Series {
		names[i] = s.Name
	}
	return names
}

// Range returns the smallest and largest value over all series.
func (c Chart) Range() (lo, hi float64) {
	for i, s := range c.Series {
		if len(s.Values) == 0 {
			continue
		}
		smin, smax := floats.Min(s.Values), floats.Max(s.Values)
		if i == 0 || smin < lo {
			lo = smin
		}
		if i == 0 || smax > hi {
			hi = smax
		}
	}
	return lo, hi
}
