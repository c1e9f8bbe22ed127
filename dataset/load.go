package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"path/filepath"
	"strconv"
	"time"

	"github.com/YuminosukeSato/tumblelab/h5io"
	"github.com/YuminosukeSato/tumblelab/pkg/errors"
	tlog "github.com/YuminosukeSato/tumblelab/pkg/log"
)

const (
	// DefaultDir is the directory scanned for dataset containers.
	DefaultDir = "no_roll_data"

	// orientationLevels is the number of discrete orientation values a
	// pixel can take (1..4); raw frames use 0 for empty sites.
	orientationLevels = 4

	// Augmentation shift offsets, applied to both axes.
	shiftNear = 42
	shiftFar  = 120
)

// Options configures Load. Zero values select the defaults used by the
// research workflow.
type Options struct {
	// Dir is the directory containing dataset containers (default "no_roll_data").
	Dir string

	// Alphas are the tumbling rates to load (default: DefaultAlphas).
	Alphas []float64

	// Densities are the packing densities to load (default: DefaultDensities).
	Densities []float64

	// Orientation preserves pixel intensity, normalizing the 0..4 discrete
	// range to [0, 1]. When false, frames are binarized to {0, 1}.
	Orientation bool

	// Scrambled multiplies binarized pixels by per-pixel noise in
	// {1/4, 2/4, 3/4, 1}, destroying orientation information while keeping
	// positions. Only meaningful when Orientation is false.
	Scrambled bool

	// Rand is the randomness source for scrambling and the final shuffle.
	// Nil selects a time-seeded source.
	Rand *rand.Rand
}

// Dataset is a loaded, augmented, shuffled collection of labeled frames.
type Dataset struct {
	Frames []Frame
	Labels []float64
	Shape  [3]int
}

// DefaultAlphas returns the ten log-spaced tumbling rates between 2^-6 and
// 2^-1 used by the simulation campaign.
func DefaultAlphas() []float64 {
	alphas := make([]float64, 10)
	for i := range alphas {
		exp := -6 + 5*float64(i)/9
		alphas[i] = math.Exp2(exp)
	}
	return alphas
}

// DefaultDensities returns packing densities 0 to 0.5 in steps of 0.05.
func DefaultDensities() []float64 {
	densities := make([]float64, 11)
	for i := range densities {
		densities[i] = float64(i) * 0.05
	}
	return densities
}

// FileName returns the container name encoding one (alpha, density) pair,
// e.g. "dataset_tumble_0.125_0.3.h5". Alpha is fixed to three decimals;
// density uses the shortest exact representation.
func FileName(alpha, density float64) string {
	return fmt.Sprintf("dataset_tumble_%.3f_%s.h5", alpha, strconv.FormatFloat(density, 'g', -1, 64))
}

// Load scans Options.Dir for containers on the (alpha, density) grid, reads
// every frame, applies the configured transform, appends two cyclically
// shifted copies of each frame (labels duplicated), and returns the whole
// set in one uniform random permutation.
//
// Each frame's label is the first float extracted from its file path, which
// encodes the tumbling rate. Load fails when no file matches or when frames
// disagree on shape.
func Load(opts Options) (*Dataset, error) {
	start := time.Now()

	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.Alphas == nil {
		opts.Alphas = DefaultAlphas()
	}
	if opts.Densities == nil {
		opts.Densities = DefaultDensities()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var files []string
	for _, alp := range opts.Alphas {
		for _, val := range opts.Densities {
			matches, err := filepath.Glob(filepath.Join(opts.Dir, FileName(alp, val)))
			if err != nil {
				return nil, errors.Wrap(err, "dataset: glob")
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return nil, errors.NewValueError("dataset.Load",
			fmt.Sprintf("no dataset files matched in %s for %d alphas x %d densities",
				opts.Dir, len(opts.Alphas), len(opts.Densities)))
	}

	var (
		frames    []Frame
		labels    []float64
		shape     [3]int
		rawFrames int
	)

	for _, file := range files {
		// Extract from the base name only: directory components may carry
		// unrelated numbers and the first match is the label.
		floats := ExtractFloats(filepath.Base(file))
		if len(floats) == 0 {
			return nil, errors.NewValueError("dataset.Load",
				fmt.Sprintf("no numeric label in file name %s", file))
		}
		tumble, err := strconv.ParseFloat(floats[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: parse label from %s", file)
		}

		fileFrames, err := readContainer(file, opts, rng)
		if err != nil {
			return nil, err
		}

		for _, f := range fileFrames {
			if rawFrames == 0 {
				shape = f.Shape()
			} else if f.Shape() != shape {
				return nil, errors.NewDimensionError("dataset.Load", shape[0]*shape[1], f.Rows*f.Cols, 0)
			}
			rawFrames++

			frames = append(frames, f, f.Roll(shiftNear, shiftNear), f.Roll(shiftFar, shiftFar))
			labels = append(labels, tumble, tumble, tumble)
		}
	}

	// One uniform permutation over the whole augmented set.
	perm := rng.Perm(len(labels))
	shuffledFrames := make([]Frame, len(frames))
	shuffledLabels := make([]float64, len(labels))
	for i, j := range perm {
		shuffledFrames[i] = frames[j]
		shuffledLabels[i] = labels[j]
	}

	slog.Info("dataset loaded",
		tlog.OperationKey, "load",
		tlog.FilesKey, len(files),
		tlog.FramesKey, rawFrames,
		tlog.SamplesKey, len(shuffledLabels),
		tlog.ShapeKey, shape[:],
		tlog.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Dataset{Frames: shuffledFrames, Labels: shuffledLabels, Shape: shape}, nil
}

// readContainer reads every keyed grid from one container and applies the
// configured pixel transform.
func readContainer(path string, opts Options, rng *rand.Rand) ([]Frame, error) {
	c, err := h5io.Open(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	_, grids, err := c.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, 0, len(grids))
	for _, g := range grids {
		transform(g, opts, rng)
		frames = append(frames, frameFromGrid(g))
	}
	return frames, nil
}

// transform applies the orientation/scrambled pixel mapping in place.
func transform(g h5io.Grid, opts Options, rng *rand.Rand) {
	if opts.Orientation {
		for i, v := range g.Data {
			g.Data[i] = v / orientationLevels
		}
		return
	}

	for i, v := range g.Data {
		if v > 0 {
			g.Data[i] = 1
		}
	}
	if opts.Scrambled {
		for i, v := range g.Data {
			noise := float64(1+rng.Intn(orientationLevels)) / orientationLevels
			g.Data[i] = v * noise
		}
	}
}
