package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tumblelab/pkg/errors"
)

func makeSamples(n int) ([]Frame, []float64) {
	rng := rand.New(rand.NewSource(21))
	x := make([]Frame, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = randomFrame(rng, 4, 4)
		y[i] = float64(i)
	}
	return x, y
}

func TestSplitSizes(t *testing.T) {
	x, y := makeSamples(10)

	res, err := Split(x, y, 3)
	require.NoError(t, err)

	assert.Len(t, res.XTrain, 7)
	assert.Len(t, res.YTrain, 7)
	assert.Len(t, res.XVal, 3)
	assert.Len(t, res.YVal, 3)
}

func TestSplitConcatenationReconstructs(t *testing.T) {
	x, y := makeSamples(12)

	res, err := Split(x, y, 5)
	require.NoError(t, err)

	rebuilt := append(append([]float64{}, res.YTrain...), res.YVal...)
	assert.Equal(t, y, rebuilt)
	assert.Equal(t, x[6].Data, append(res.XTrain, res.XVal...)[6].Data)
}

func TestSplitValidation(t *testing.T) {
	x, y := makeSamples(5)

	tests := []struct {
		name string
		last int
	}{
		{name: "negative", last: -1},
		{name: "equal to size", last: 5},
		{name: "larger than size", last: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(x, y, tt.last)
			require.Error(t, err)
			var vErr *errors.ValidationError
			assert.True(t, errors.As(err, &vErr), "want ValidationError, got %T", err)
		})
	}
}

func TestSplitLengthMismatch(t *testing.T) {
	x, _ := makeSamples(4)
	_, err := Split(x, []float64{1, 2}, 1)
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "want DimensionError, got %T", err)
}

func TestUniqueCount(t *testing.T) {
	assert.Equal(t, 3, UniqueCount([]float64{0.1, 0.2, 0.1, 0.3, 0.3}))
	assert.Equal(t, 0, UniqueCount(nil))
}
