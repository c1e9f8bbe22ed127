package regress

import (
	"log/slog"

	"github.com/YuminosukeSato/tumblelab/core/model"
	"github.com/YuminosukeSato/tumblelab/dataset"
	"github.com/YuminosukeSato/tumblelab/pkg/errors"
	tlog "github.com/YuminosukeSato/tumblelab/pkg/log"
)

// Save persists the network under dir/<name>.gob.
func (n *Network) Save(dir, name string) error {
	if !n.IsFitted() {
		return errors.NewNotFittedError("Network", "Save")
	}
	if err := model.SaveModel(n, model.ModelPath(dir, name)); err != nil {
		return errors.NewModelError("regress.Save", "encode failed", err)
	}
	return nil
}

// Load reads a persisted network from dir/<name>.gob.
func Load(dir, name string) (*Network, error) {
	var n Network
	if err := model.LoadModel(&n, model.ModelPath(dir, name)); err != nil {
		return nil, errors.NewModelError("regress.Load", "decode failed", err)
	}
	return &n, nil
}

// PredictNamed loads one persisted model and runs it on the validation set.
func PredictNamed(dir, name string, x []dataset.Frame) ([]float64, error) {
	n, err := Load(dir, name)
	if err != nil {
		return nil, err
	}
	preds, err := n.Predict(x)
	if err != nil {
		return nil, err
	}
	slog.Info("model predictions collected",
		tlog.OperationKey, "predict",
		tlog.ModelNameKey, name,
		tlog.SamplesKey, len(preds),
	)
	return preds, nil
}

// PredictMulti runs every named persisted model on the validation set and
// concatenates the results; the label slice is repeated once per model so
// predictions and actuals stay paired elementwise. A missing or malformed
// model file aborts the whole run.
func PredictMulti(dir string, names []string, xVal []dataset.Frame, yVal []float64) (predictions, actual []float64, err error) {
	if len(names) == 0 {
		return nil, nil, errors.NewValueError("regress.PredictMulti", "no model names given")
	}
	if len(xVal) != len(yVal) {
		return nil, nil, errors.NewDimensionError("regress.PredictMulti", len(xVal), len(yVal), 0)
	}

	predictions = make([]float64, 0, len(names)*len(yVal))
	actual = make([]float64, 0, len(names)*len(yVal))
	for _, name := range names {
		preds, err := PredictNamed(dir, name, xVal)
		if err != nil {
			return nil, nil, err
		}
		predictions = append(predictions, preds...)
		actual = append(actual, yVal...)
	}
	return predictions, actual, nil
}
