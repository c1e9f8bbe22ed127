package dataset

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tumblelab/h5io"
	"github.com/YuminosukeSato/tumblelab/pkg/errors"
)

// writeFixture writes one container with `frames` random raw frames whose
// pixel values lie in {0..4}.
func writeFixture(t *testing.T, dir string, alpha, density float64, frames, rows, cols int, rng *rand.Rand) {
	t.Helper()
	c, err := h5io.Create(filepath.Join(dir, FileName(alpha, density)))
	require.NoError(t, err)
	defer c.Close()

	for k := 0; k < frames; k++ {
		g := h5io.NewGrid(rows, cols)
		for i := range g.Data {
			g.Data[i] = float64(rng.Intn(5))
		}
		require.NoError(t, c.WriteGrid(fmt.Sprintf("frame_%03d", k), g))
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "dataset_tumble_0.125_0.3.h5", FileName(0.125, 0.3))
	assert.Equal(t, "dataset_tumble_0.016_0.h5", FileName(0.015625, 0))
}

func TestDefaultGrids(t *testing.T) {
	alphas := DefaultAlphas()
	require.Len(t, alphas, 10)
	assert.InDelta(t, 0.015625, alphas[0], 1e-12) // 2^-6
	assert.InDelta(t, 0.5, alphas[9], 1e-12)      // 2^-1

	densities := DefaultDensities()
	require.Len(t, densities, 11)
	assert.InDelta(t, 0.0, densities[0], 1e-12)
	assert.InDelta(t, 0.5, densities[10], 1e-12)
}

func TestLoadAugmentsAndLabels(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(1))
	writeFixture(t, dir, 0.125, 0.3, 4, 8, 8, rng)

	ds, err := Load(Options{
		Dir:         dir,
		Alphas:      []float64{0.125},
		Densities:   []float64{0.3},
		Orientation: true,
		Rand:        rand.New(rand.NewSource(2)),
	})
	require.NoError(t, err)

	// 3x augmentation of 4 raw frames
	assert.Len(t, ds.Frames, 12)
	assert.Len(t, ds.Labels, 12)
	assert.Equal(t, [3]int{8, 8, 1}, ds.Shape)

	// every sample carries the label extracted from the file name
	for _, label := range ds.Labels {
		assert.Equal(t, 0.125, label)
	}
}

func TestLoadLabelsTrackSourceFile(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(3))
	writeFixture(t, dir, 0.125, 0.3, 2, 8, 8, rng)
	writeFixture(t, dir, 0.031, 0.3, 3, 8, 8, rng)

	ds, err := Load(Options{
		Dir:         dir,
		Alphas:      []float64{0.125, 0.031},
		Densities:   []float64{0.3},
		Orientation: true,
		Rand:        rand.New(rand.NewSource(4)),
	})
	require.NoError(t, err)
	require.Len(t, ds.Labels, 15) // (2+3) raw frames x 3

	counts := map[float64]int{}
	for _, label := range ds.Labels {
		counts[label]++
	}
	assert.Equal(t, 6, counts[0.125])
	assert.Equal(t, 9, counts[0.031])
}

func TestLoadBinarizedPixelsAreBinary(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 0.062, 0.1, 2, 8, 8, rand.New(rand.NewSource(5)))

	ds, err := Load(Options{
		Dir:       dir,
		Alphas:    []float64{0.062},
		Densities: []float64{0.1},
		Rand:      rand.New(rand.NewSource(6)),
	})
	require.NoError(t, err)

	for _, f := range ds.Frames {
		for _, v := range f.Data {
			if v != 0 && v != 1 {
				t.Fatalf("binarized pixel outside {0,1}: %v", v)
			}
		}
	}
}

func TestLoadOrientationPixelsAreQuarterSteps(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 0.062, 0.1, 2, 8, 8, rand.New(rand.NewSource(7)))

	ds, err := Load(Options{
		Dir:         dir,
		Alphas:      []float64{0.062},
		Densities:   []float64{0.1},
		Orientation: true,
		Rand:        rand.New(rand.NewSource(8)),
	})
	require.NoError(t, err)

	allowed := map[float64]bool{0: true, 0.25: true, 0.5: true, 0.75: true, 1: true}
	for _, f := range ds.Frames {
		for _, v := range f.Data {
			if !allowed[v] {
				t.Fatalf("orientation pixel outside quarter steps: %v", v)
			}
		}
	}
}

func TestTransformScrambledKeepsPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	g := h5io.NewGrid(8, 8)
	for i := range g.Data {
		g.Data[i] = float64(i % 5)
	}
	occupied := make([]bool, len(g.Data))
	for i, v := range g.Data {
		occupied[i] = v > 0
	}

	transform(g, Options{Scrambled: true}, rng)

	// noise rescales occupied sites into {1/4, 2/4, 3/4, 1}; empty sites stay 0
	for i, v := range g.Data {
		if !occupied[i] {
			assert.Zero(t, v)
			continue
		}
		assert.Contains(t, []float64{0.25, 0.5, 0.75, 1}, v)
	}
}

func TestLoadNoMatchesFailsFast(t *testing.T) {
	_, err := Load(Options{
		Dir:       t.TempDir(),
		Alphas:    []float64{0.125},
		Densities: []float64{0.3},
	})
	require.Error(t, err)

	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr), "want ValueError, got %T", err)
}

func TestLoadShapeMismatchFails(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(11))
	writeFixture(t, dir, 0.125, 0.3, 1, 8, 8, rng)
	writeFixture(t, dir, 0.031, 0.3, 1, 16, 16, rng)

	_, err := Load(Options{
		Dir:       dir,
		Alphas:    []float64{0.125, 0.031},
		Densities: []float64{0.3},
		Rand:      rand.New(rand.NewSource(12)),
	})
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr), "want DimensionError, got %T", err)
}

func TestLoadShuffleIsDeterministicPerSeed(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, 0.125, 0.3, 5, 8, 8, rand.New(rand.NewSource(13)))

	opts := func(seed int64) Options {
		return Options{
			Dir:         dir,
			Alphas:      []float64{0.125},
			Densities:   []float64{0.3},
			Orientation: true,
			Rand:        rand.New(rand.NewSource(seed)),
		}
	}

	a, err := Load(opts(42))
	require.NoError(t, err)
	b, err := Load(opts(42))
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	for i := range a.Frames {
		assert.Equal(t, a.Frames[i].Data, b.Frames[i].Data)
	}
}
