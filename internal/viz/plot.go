package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	defaultHeight = 10
	defaultWidth  = 80
)

// Temperature renders one temperature series as an ascii chart.
func Temperature(values []float64, caption string) string {
	if len(values) == 0 {
		return "(no data)"
	}
	return asciigraph.Plot(values,
		asciigraph.Height(defaultHeight),
		asciigraph.Width(defaultWidth),
		asciigraph.Caption(caption),
	)
}

// Compare overlays several series on one chart, one color per series.
func Compare(series [][]float64, caption string) string {
	if len(series) == 0 {
		return "(no data)"
	}
	colors := []asciigraph.AnsiColor{
		asciigraph.Red,
		asciigraph.Green,
		asciigraph.Blue,
		asciigraph.Yellow,
	}
	if len(series) > len(colors) {
		series = series[:len(colors)]
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(defaultHeight),
		asciigraph.Width(defaultWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors[:len(series)]...),
	)
}

// Sparkline is a compact chart for the live view.
func Sparkline(values []float64, width, height int, label string) string {
	if len(values) < 2 {
		return fmt.Sprintf("%s: collecting...", label)
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(label),
	)
}
