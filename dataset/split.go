package dataset

import (
	"log/slog"

	"github.com/YuminosukeSato/tumblelab/pkg/errors"
	tlog "github.com/YuminosukeSato/tumblelab/pkg/log"
)

// DefaultValidationSize is the number of tail samples held out by the
// research workflow.
const DefaultValidationSize = 2000

// SplitResult holds a train/validation partition of a dataset.
type SplitResult struct {
	XTrain []Frame
	YTrain []float64
	XVal   []Frame
	YVal   []float64
}

// Split slices the last `last` samples off as validation data and keeps the
// remainder for training. The dataset is assumed to be pre-shuffled by
// Load, so no randomization happens here; concatenating the two parts in
// order reconstructs the input exactly.
func Split(x []Frame, y []float64, last int) (*SplitResult, error) {
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("dataset.Split", len(x), len(y), 0)
	}
	if last < 0 || last >= len(y) {
		return nil, errors.NewValidationError("last",
			"must be in [0, number of samples)", last)
	}

	cut := len(y) - last
	res := &SplitResult{
		XTrain: x[:cut],
		YTrain: y[:cut],
		XVal:   x[cut:],
		YVal:   y[cut:],
	}

	slog.Info("dataset split",
		tlog.OperationKey, "split",
		tlog.LabelsKey, UniqueCount(y),
		tlog.SamplesKey, len(y),
		tlog.TrainSizeKey, len(res.XTrain),
		tlog.ValSizeKey, len(res.XVal),
	)

	return res, nil
}

// UniqueCount returns the number of distinct label values.
func UniqueCount(y []float64) int {
	seen := make(map[float64]struct{}, len(y))
	for _, v := range y {
		seen[v] = struct{}{}
	}
	return len(seen)
}
