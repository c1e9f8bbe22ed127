// Package model holds the shared estimator plumbing: fitted-state tracking
// and gob persistence for trained regression models.
package model

// EstimatorState tracks whether a model has been trained.
type EstimatorState int

const (
	// NotFitted marks a model that has not been trained or loaded yet.
	NotFitted EstimatorState = iota
	// Fitted marks a trained (or loaded) model.
	Fitted
)

// BaseEstimator is embedded by every model in this repository.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been trained or loaded.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to the untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
