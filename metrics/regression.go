// Package metrics provides the regression losses used for training and
// evaluating tumbling-rate models.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tumblelab/pkg/errors"
)

// DefaultHuberDelta is the threshold beyond which the Huber loss becomes
// linear.
const DefaultHuberDelta = 1.0

// Huber computes the elementwise Huber loss for one prediction/target pair:
// half the squared error below delta, delta*(|error| - delta/2) above it.
// Both branches agree exactly at |error| == delta.
func Huber(yTrue, yPred, delta float64) float64 {
	err := yTrue - yPred
	abs := math.Abs(err)
	if abs < delta {
		return 0.5 * err * err
	}
	return delta * (abs - 0.5*delta)
}

// HuberGradient returns d/dyPred of Huber(yTrue, yPred, delta). Used by the
// training loop.
func HuberGradient(yTrue, yPred, delta float64) float64 {
	err := yPred - yTrue
	if math.Abs(err) < delta {
		return err
	}
	if err > 0 {
		return delta
	}
	return -delta
}

// HuberLoss computes the mean Huber loss over paired vectors.
func HuberLoss(yTrue, yPred *mat.VecDense, delta float64) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "HuberLoss")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("HuberLoss", n, yPred.Len(), 0)
	}
	if delta <= 0 {
		return 0, errors.NewValidationError("delta", "must be positive", delta)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += Huber(yTrue.AtVec(i), yPred.AtVec(i), delta)
	}
	return sum / float64(n), nil
}

// MSE computes the mean squared error over paired vectors.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "MSE")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error over paired vectors.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}
