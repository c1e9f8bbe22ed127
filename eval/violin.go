package eval

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/tumblelab/pkg/errors"
)

// ViolinPlot renders the distribution of prediction error (prediction minus
// actual) per unique label as mirrored kernel density bodies with an inner
// quartile box. Groups are placed one unit apart on the X axis and labelled
// with their true tumbling rate.
func ViolinPlot(predictions, actual []float64, cfg PlotConfig) (*plot.Plot, error) {
	if len(predictions) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "eval.ViolinPlot")
	}
	if len(predictions) != len(actual) {
		return nil, errors.NewDimensionError("eval.ViolinPlot", len(actual), len(predictions), 0)
	}

	residuals := make([]float64, len(predictions))
	for i := range predictions {
		residuals[i] = predictions[i] - actual[i]
	}
	groups := groupByLabel(residuals, actual)

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel
	if cfg.Background != nil {
		p.BackgroundColor = cfg.Background
	}

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = strconv.FormatFloat(g.label, 'g', 4, 64)
		if err := addViolin(p, float64(i), g.preds, cfg); err != nil {
			return nil, err
		}
	}
	p.NominalX(names...)

	return p, nil
}

// SavePlot writes the plot to path; the extension selects the format.
func SavePlot(p *plot.Plot, cfg PlotConfig, path string) error {
	if err := p.Save(cfg.Width, cfg.Height, path); err != nil {
		return errors.Wrap(err, "eval: save plot")
	}
	return nil
}

// addViolin draws one density body centered at x, plus its quartile box and
// median marker.
func addViolin(p *plot.Plot, x float64, errs []float64, cfg PlotConfig) error {
	grid, density := kde(errs, cfg.KDEPoints)

	peak := 0.0
	for _, d := range density {
		if d > peak {
			peak = d
		}
	}
	if peak == 0 {
		peak = 1
	}

	// mirrored outline: right side top to bottom, then left side back up
	body := make(plotter.XYs, 0, 2*len(grid))
	for i := len(grid) - 1; i >= 0; i-- {
		body = append(body, plotter.XY{X: x + density[i]/peak*cfg.MaxWidth, Y: grid[i]})
	}
	for i := range grid {
		body = append(body, plotter.XY{X: x - density[i]/peak*cfg.MaxWidth, Y: grid[i]})
	}

	poly, err := plotter.NewPolygon(body)
	if err != nil {
		return errors.Wrap(err, "eval: violin body")
	}
	poly.Color = cfg.ViolinFill
	poly.LineStyle = draw.LineStyle{Color: cfg.ViolinOutline, Width: cfg.LineWidth}
	p.Add(poly)

	boxHalf := cfg.MaxWidth / 8

	// a single residual has no quartiles; draw just its median tick
	if len(errs) < 2 {
		return addMedianTick(p, x, errs[0], boxHalf, cfg)
	}

	q, err := stats.Quartile(errs)
	if err != nil {
		return errors.Wrap(err, "eval: quartiles")
	}

	box := plotter.XYs{
		{X: x - boxHalf, Y: q.Q1},
		{X: x + boxHalf, Y: q.Q1},
		{X: x + boxHalf, Y: q.Q3},
		{X: x - boxHalf, Y: q.Q3},
	}
	boxPoly, err := plotter.NewPolygon(box)
	if err != nil {
		return errors.Wrap(err, "eval: quartile box")
	}
	boxPoly.Color = nil
	boxPoly.LineStyle = draw.LineStyle{Color: cfg.BoxColor, Width: cfg.LineWidth}
	p.Add(boxPoly)

	return addMedianTick(p, x, q.Q2, boxHalf, cfg)
}

// addMedianTick draws the short horizontal median marker of one violin.
func addMedianTick(p *plot.Plot, x, median, half float64, cfg PlotConfig) error {
	line, err := plotter.NewLine(plotter.XYs{
		{X: x - half, Y: median},
		{X: x + half, Y: median},
	})
	if err != nil {
		return errors.Wrap(err, "eval: median")
	}
	line.LineStyle = draw.LineStyle{Color: cfg.BoxColor, Width: cfg.LineWidth}
	p.Add(line)
	return nil
}

// kde evaluates a Gaussian kernel density estimate of values on an evenly
// spaced grid spanning three bandwidths beyond the data range. The bandwidth
// follows Silverman's rule of thumb.
func kde(values []float64, points int) (grid, density []float64) {
	if points < 2 {
		points = 2
	}

	sigma, _ := stats.StandardDeviation(values)
	h := 1.06 * sigma * math.Pow(float64(len(values)), -0.2)
	if h <= 0 {
		// degenerate group, all residuals equal
		h = 1e-3
	}
	kernel := distuv.Normal{Mu: 0, Sigma: h}

	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	lo -= 3 * h
	hi += 3 * h

	grid = make([]float64, points)
	density = make([]float64, points)
	step := (hi - lo) / float64(points-1)
	for i := range grid {
		y := lo + float64(i)*step
		grid[i] = y
		var sum float64
		for _, v := range values {
			sum += kernel.Prob(y - v)
		}
		density[i] = sum / float64(len(values))
	}
	return grid, density
}
