package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tumblelab/dataset"
	"github.com/YuminosukeSato/tumblelab/pkg/errors"
)

// constFrame builds a Frame whose pixels all hold v.
func constFrame(rows, cols int, v float64) dataset.Frame {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return dataset.Frame{Rows: rows, Cols: cols, Channels: 1, Data: data}
}

func TestNewDefaults(t *testing.T) {
	n, err := New(16, Config{Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{16, 64, 32, 1}, n.Sizes)
	assert.Equal(t, 16, n.InputDim())
	assert.Equal(t, 0.001, n.Cfg.LearningRate)
	assert.Equal(t, 10, n.Cfg.Epochs)
	assert.Equal(t, 32, n.Cfg.BatchSize)
	assert.False(t, n.IsFitted())
}

func TestNewRejectsBadInputDim(t *testing.T) {
	_, err := New(0, Config{})
	require.Error(t, err)
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestPredictRequiresFit(t *testing.T) {
	n, err := New(4, Config{Seed: 1})
	require.NoError(t, err)

	_, err = n.Predict([]dataset.Frame{constFrame(2, 2, 1)})
	require.Error(t, err)
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))
}

func TestPredictChecksInputDim(t *testing.T) {
	n, err := New(4, Config{Seed: 1, Epochs: 1})
	require.NoError(t, err)
	require.NoError(t, n.Fit([]dataset.Frame{constFrame(2, 2, 0)}, []float64{0}))

	_, err = n.Predict([]dataset.Frame{constFrame(3, 3, 0)})
	require.Error(t, err)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestFitConvergesOnConstantTarget(t *testing.T) {
	n, err := New(4, Config{
		Seed:         7,
		Epochs:       200,
		BatchSize:    4,
		LearningRate: 0.05,
	})
	require.NoError(t, err)

	// all-zero inputs: only the output bias can learn, and it must approach
	// the constant target
	x := make([]dataset.Frame, 8)
	y := make([]float64, 8)
	for i := range x {
		x[i] = constFrame(2, 2, 0)
		y[i] = 0.5
	}

	before, err := n.meanLoss(x, y)
	require.NoError(t, err)

	require.NoError(t, n.Fit(x, y))
	require.True(t, n.IsFitted())

	after, err := n.meanLoss(x, y)
	require.NoError(t, err)
	assert.Less(t, after, before)

	preds, err := n.Predict(x)
	require.NoError(t, err)
	for _, p := range preds {
		assert.InDelta(t, 0.5, p, 0.05)
	}
}

func TestFitReducesLossOnLinearTarget(t *testing.T) {
	n, err := New(4, Config{
		Seed:         3,
		Epochs:       50,
		BatchSize:    8,
		LearningRate: 0.01,
		HiddenSizes:  []int{8},
	})
	require.NoError(t, err)

	var x []dataset.Frame
	var y []float64
	for i := 0; i < 32; i++ {
		v := float64(i%8) / 8
		x = append(x, constFrame(2, 2, v))
		y = append(y, v)
	}

	before, err := n.meanLoss(x, y)
	require.NoError(t, err)
	require.NoError(t, n.Fit(x, y))
	after, err := n.meanLoss(x, y)
	require.NoError(t, err)

	assert.Less(t, after, before)
}

func TestFitValidation(t *testing.T) {
	n, err := New(4, Config{Seed: 1})
	require.NoError(t, err)

	assert.Error(t, n.Fit(nil, nil))
	assert.Error(t, n.Fit([]dataset.Frame{constFrame(2, 2, 0)}, []float64{1, 2}))
	assert.Error(t, n.Fit([]dataset.Frame{constFrame(3, 3, 0)}, []float64{1}))
}
