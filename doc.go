// Package tumblelab provides the analysis pipeline for tumbling-rate
// regression on simulated run-and-tumble particle images.
//
// Simulation runs are stored as HDF5 containers named
// dataset_tumble_<alpha>_<density>.h5, one keyed 2D frame per simulation
// instant. The pipeline loads and augments those frames, runs persisted
// regression models on held-out data, and reports per-label error statistics
// together with a violin plot of prediction error.
//
// # Packages
//
//   - dataset: loading, transformation, augmentation, and splitting
//   - h5io: keyed frame-container read/write
//   - regress: feed-forward regression models (train, persist, predict)
//   - metrics: regression losses (Huber, MSE, RMSE)
//   - eval: per-label statistics and violin plotting
//
// # Quick Start
//
//	ds, err := dataset.Load(dataset.Options{Orientation: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	split, err := dataset.Split(ds.Frames, ds.Labels, 2000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	preds, actual, err := regress.PredictMulti("models", names, split.XVal, split.YVal)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := eval.Evaluate(preds, actual, eval.DefaultTolerance)
//
// The cmd/tumbleval and cmd/tumblegen binaries wire these packages into the
// research workflow.
package tumblelab
