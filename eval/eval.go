// Package eval computes the per-label error statistics for a set of model
// predictions and renders the violin plot of prediction error grouped by
// true tumbling rate.
package eval

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/YuminosukeSato/tumblelab/pkg/errors"
	tlog "github.com/YuminosukeSato/tumblelab/pkg/log"
)

// DefaultTolerance is the slack applied on both sides of a true label when
// testing whether it falls inside the prediction range.
const DefaultTolerance = 1e-3

// LabelStats holds the statistics of one unique label value.
type LabelStats struct {
	// Label is the true tumbling rate.
	Label float64

	// Count is the number of predictions made for this label.
	Count int

	// Std is the population standard deviation of those predictions.
	Std float64

	// Overlap reports whether Label (within tolerance) lies inside the
	// [min, max] range of the predictions.
	Overlap bool
}

// Summary aggregates the evaluation of one prediction run.
type Summary struct {
	// OverlapRatio is the fraction of unique labels with Overlap set.
	OverlapRatio float64

	// StdMin, StdMax and StdMean summarize the per-label standard deviations.
	StdMin  float64
	StdMax  float64
	StdMean float64

	// Pearson is the correlation coefficient between actual values and
	// predictions over the full arrays.
	Pearson float64

	// Labels holds the per-label rows, sorted by label value.
	Labels []LabelStats
}

// Evaluate pairs predictions with actual labels elementwise and computes the
// per-label and aggregate statistics. It requires at least two distinct
// label values, since the Pearson correlation is undefined otherwise.
func Evaluate(predictions, actual []float64, tol float64) (*Summary, error) {
	if len(predictions) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "eval.Evaluate")
	}
	if len(predictions) != len(actual) {
		return nil, errors.NewDimensionError("eval.Evaluate", len(actual), len(predictions), 0)
	}

	groups := groupByLabel(predictions, actual)
	if len(groups) < 2 {
		return nil, errors.NewValueError("eval.Evaluate",
			fmt.Sprintf("need at least 2 unique labels, got %d", len(groups)))
	}

	summary := &Summary{Labels: make([]LabelStats, 0, len(groups))}
	stds := make([]float64, 0, len(groups))
	overlapCount := 0

	for _, g := range groups {
		std, err := stats.StandardDeviation(g.preds)
		if err != nil {
			return nil, errors.Wrap(err, "eval: std")
		}
		lo, err := stats.Min(g.preds)
		if err != nil {
			return nil, errors.Wrap(err, "eval: min")
		}
		hi, err := stats.Max(g.preds)
		if err != nil {
			return nil, errors.Wrap(err, "eval: max")
		}

		overlap := g.label+tol >= lo && g.label-tol <= hi
		if overlap {
			overlapCount++
		}
		stds = append(stds, std)
		summary.Labels = append(summary.Labels, LabelStats{
			Label:   g.label,
			Count:   len(g.preds),
			Std:     std,
			Overlap: overlap,
		})
	}

	summary.OverlapRatio = float64(overlapCount) / float64(len(groups))

	var err error
	if summary.StdMin, err = stats.Min(stds); err != nil {
		return nil, errors.Wrap(err, "eval: std min")
	}
	if summary.StdMax, err = stats.Max(stds); err != nil {
		return nil, errors.Wrap(err, "eval: std max")
	}
	if summary.StdMean, err = stats.Mean(stds); err != nil {
		return nil, errors.Wrap(err, "eval: std mean")
	}
	if summary.Pearson, err = stats.Pearson(actual, predictions); err != nil {
		return nil, errors.Wrap(err, "eval: pearson")
	}

	slog.Info("evaluation finished",
		tlog.OperationKey, "evaluate",
		tlog.SamplesKey, len(predictions),
		tlog.LabelsKey, len(groups),
		tlog.OverlapRatioKey, summary.OverlapRatio,
		tlog.StdMinKey, summary.StdMin,
		tlog.StdMaxKey, summary.StdMax,
		tlog.StdMeanKey, summary.StdMean,
		tlog.PearsonKey, summary.Pearson,
	)

	return summary, nil
}

// String formats the summary the way the research notebooks report it.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overlap ratio: %g\n", s.OverlapRatio)
	fmt.Fprintf(&b, "(Min, Max, Avg) STD: %g %g %g\n", s.StdMin, s.StdMax, s.StdMean)
	fmt.Fprintf(&b, "Pearson's correlation coeff: %g", s.Pearson)
	return b.String()
}

// labelGroup collects the predictions made for one unique label.
type labelGroup struct {
	label float64
	preds []float64
}

// groupByLabel partitions predictions by their actual label, sorted by
// label value.
func groupByLabel(predictions, actual []float64) []labelGroup {
	byLabel := make(map[float64][]float64)
	for i, a := range actual {
		byLabel[a] = append(byLabel[a], predictions[i])
	}

	labels := make([]float64, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Float64s(labels)

	groups := make([]labelGroup, 0, len(labels))
	for _, l := range labels {
		groups = append(groups, labelGroup{label: l, preds: byLabel[l]})
	}
	return groups
}
