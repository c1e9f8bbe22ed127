package eval

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// PlotConfig holds the explicit style of the violin plot. Styling is passed
// per call instead of mutating any global plot state, so concurrent renders
// cannot interfere.
type PlotConfig struct {
	// Width and Height of the saved figure.
	Width  vg.Length
	Height vg.Length

	// Background fills the whole figure.
	Background color.Color

	// ViolinFill and ViolinOutline style the density bodies.
	ViolinFill    color.Color
	ViolinOutline color.Color

	// BoxColor styles the inner quartile box and the median marker.
	BoxColor color.Color

	// LineWidth of outlines and the median marker.
	LineWidth vg.Length

	// KDEPoints is the number of grid points per density curve.
	KDEPoints int

	// MaxWidth is the violin half-width in group units. Groups sit one unit
	// apart, so values above 0.5 overlap.
	MaxWidth float64

	// Title, XLabel and YLabel annotate the axes.
	Title  string
	XLabel string
	YLabel string
}

// DefaultPlotConfig returns the style used by the tumbleval reports.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Width:         9 * vg.Inch,
		Height:        6 * vg.Inch,
		Background:    color.White,
		ViolinFill:    color.RGBA{R: 0x87, G: 0xb5, B: 0xd6, A: 0xb0},
		ViolinOutline: color.RGBA{R: 0x2f, G: 0x5d, B: 0x8a, A: 0xff},
		BoxColor:      color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		LineWidth:     vg.Points(1),
		KDEPoints:     64,
		MaxWidth:      0.4,
		XLabel:        "Tumbling rate α",
		YLabel:        "Error y_p − y_a",
	}
}
