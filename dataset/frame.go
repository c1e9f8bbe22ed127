// Package dataset loads run-and-tumble simulation images into a shuffled,
// augmented in-memory dataset ready for supervised regression on the
// tumbling rate.
package dataset

import (
	"github.com/YuminosukeSato/tumblelab/h5io"
)

// Frame is a single simulation image with a trailing singleton channel
// dimension, stored row-major.
type Frame struct {
	Rows     int
	Cols     int
	Channels int
	Data     []float64
}

// frameFromGrid wraps a raw 2D grid into the single-channel layout the
// models consume.
func frameFromGrid(g h5io.Grid) Frame {
	return Frame{Rows: g.Rows, Cols: g.Cols, Channels: 1, Data: g.Data}
}

// At returns the pixel value at (r, c).
func (f Frame) At(r, c int) float64 {
	return f.Data[r*f.Cols+c]
}

// Shape returns the frame shape as [rows, cols, channels].
func (f Frame) Shape() [3]int {
	return [3]int{f.Rows, f.Cols, f.Channels}
}

// Roll returns a copy of the frame cyclically shifted by dr rows and dc
// columns with wrap-around, the 2D analogue of a circular shift: the pixel
// at (r, c) moves to ((r+dr) mod rows, (c+dc) mod cols). Negative shifts
// roll the other way.
func (f Frame) Roll(dr, dc int) Frame {
	out := Frame{Rows: f.Rows, Cols: f.Cols, Channels: f.Channels, Data: make([]float64, len(f.Data))}
	for r := 0; r < f.Rows; r++ {
		nr := mod(r+dr, f.Rows)
		for c := 0; c < f.Cols; c++ {
			nc := mod(c+dc, f.Cols)
			out.Data[nr*f.Cols+nc] = f.Data[r*f.Cols+c]
		}
	}
	return out
}

// mod is a floored modulo so negative shifts wrap correctly.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
