package log

// Standard attribute keys for pipeline operations. The keys follow a
// hierarchical naming convention ("data.samples", "eval.pearson") so logs
// can be filtered per concern.

// Operation context.
const (
	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "load", "split", "predict", "evaluate", "generate".
	OperationKey = "ml.operation"

	// ModelNameKey identifies the persisted model a prediction ran against.
	ModelNameKey = "model.name"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"
)

// Data shape and provenance.
const (
	// SamplesKey is the number of samples after augmentation and shuffling.
	SamplesKey = "data.samples"

	// FilesKey is the number of dataset files matched by the loader glob.
	FilesKey = "data.files"

	// FramesKey is the number of raw frames read before augmentation.
	FramesKey = "data.frames"

	// LabelsKey is the number of distinct label values in a dataset.
	LabelsKey = "data.unique_labels"

	// ShapeKey is the per-frame shape as a [rows, cols, channels] slice.
	ShapeKey = "data.shape"

	// TrainSizeKey and ValSizeKey describe a train/validation split.
	TrainSizeKey = "data.train_size"
	ValSizeKey   = "data.val_size"
)

// Evaluation results.
const (
	// OverlapRatioKey is the fraction of labels whose true value lies within
	// the min-max range of that label's predictions.
	OverlapRatioKey = "eval.overlap_ratio"

	// StdMinKey, StdMaxKey and StdMeanKey summarize per-label prediction
	// standard deviations.
	StdMinKey  = "eval.std_min"
	StdMaxKey  = "eval.std_max"
	StdMeanKey = "eval.std_mean"

	// PearsonKey is the Pearson correlation between predictions and labels.
	PearsonKey = "eval.pearson"

	// LossKey records a loss value during training or evaluation.
	LossKey = "metrics.loss"

	// EpochKey records the current epoch during training.
	EpochKey = "training.epoch"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
