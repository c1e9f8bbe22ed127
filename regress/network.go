// Package regress implements the feed-forward regression networks used to
// predict tumbling rates from simulation frames, together with their gob
// persistence and the multi-model prediction helper.
package regress

import (
	"bytes"
	"encoding/gob"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tumblelab/core/model"
	"github.com/YuminosukeSato/tumblelab/dataset"
	"github.com/YuminosukeSato/tumblelab/metrics"
	"github.com/YuminosukeSato/tumblelab/pkg/errors"
	tlog "github.com/YuminosukeSato/tumblelab/pkg/log"
)

// Config holds the network and training hyperparameters.
type Config struct {
	// HiddenSizes lists the hidden layer widths. Default: {64, 32}.
	HiddenSizes []int

	// LearningRate for mini-batch SGD. Default: 0.001.
	LearningRate float64

	// Epochs to train for. Default: 10.
	Epochs int

	// BatchSize for mini-batch updates. Default: 32.
	BatchSize int

	// HuberDelta is the Huber loss threshold. Default: metrics.DefaultHuberDelta.
	HuberDelta float64

	// Seed controls weight init and epoch shuffling. Zero selects a
	// time-based seed.
	Seed int64
}

func (c Config) withDefaults() Config {
	if len(c.HiddenSizes) == 0 {
		c.HiddenSizes = []int{64, 32}
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.001
	}
	if c.Epochs == 0 {
		c.Epochs = 10
	}
	if c.BatchSize == 0 {
		c.BatchSize = 32
	}
	if c.HuberDelta == 0 {
		c.HuberDelta = metrics.DefaultHuberDelta
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Network is a ReLU multilayer perceptron with a single linear output unit,
// operating on flattened frames.
type Network struct {
	model.BaseEstimator

	Cfg Config

	// Sizes holds input width, hidden widths, then 1.
	Sizes []int

	// W[l] is the Sizes[l+1] x Sizes[l] weight matrix of layer l, row-major.
	// B[l] is the bias vector of layer l.
	W [][]float64
	B [][]float64

	rng *rand.Rand
}

// New creates an untrained network for frames of the given flattened input
// dimension.
func New(inputDim int, cfg Config) (*Network, error) {
	if inputDim <= 0 {
		return nil, errors.NewValidationError("inputDim", "must be positive", inputDim)
	}
	cfg = cfg.withDefaults()

	n := &Network{
		Cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}

	n.Sizes = make([]int, 0, len(cfg.HiddenSizes)+2)
	n.Sizes = append(n.Sizes, inputDim)
	n.Sizes = append(n.Sizes, cfg.HiddenSizes...)
	n.Sizes = append(n.Sizes, 1)

	layers := len(n.Sizes) - 1
	n.W = make([][]float64, layers)
	n.B = make([][]float64, layers)
	for l := 0; l < layers; l++ {
		in, out := n.Sizes[l], n.Sizes[l+1]
		// Xavier/Glorot uniform initialization
		limit := math.Sqrt(6.0 / float64(in+out))
		w := make([]float64, out*in)
		for i := range w {
			w[i] = (n.rng.Float64()*2 - 1) * limit
		}
		n.W[l] = w
		n.B[l] = make([]float64, out)
	}

	return n, nil
}

// InputDim returns the flattened input width the network expects.
func (n *Network) InputDim() int {
	return n.Sizes[0]
}

// forward runs one sample through the network. When acts is non-nil it is
// filled with the post-activation value of every layer (input included) for
// backpropagation.
func (n *Network) forward(x []float64, acts *[][]float64) float64 {
	if acts != nil {
		*acts = append((*acts)[:0], x)
	}
	cur := x
	layers := len(n.Sizes) - 1
	for l := 0; l < layers; l++ {
		in, out := n.Sizes[l], n.Sizes[l+1]
		next := make([]float64, out)
		for j := 0; j < out; j++ {
			sum := n.B[l][j]
			row := n.W[l][j*in : (j+1)*in]
			for i, v := range cur {
				sum += row[i] * v
			}
			// hidden layers are ReLU, the output unit stays linear
			if l < layers-1 && sum < 0 {
				sum = 0
			}
			next[j] = sum
		}
		if acts != nil {
			*acts = append(*acts, next)
		}
		cur = next
	}
	return cur[0]
}

// Predict runs batch inference over frames. The network must be fitted or
// loaded first, and every frame must flatten to the configured input width.
func (n *Network) Predict(x []dataset.Frame) ([]float64, error) {
	if !n.IsFitted() {
		return nil, errors.NewNotFittedError("Network", "Predict")
	}
	if len(x) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Network.Predict")
	}

	preds := make([]float64, len(x))
	for i, f := range x {
		if len(f.Data) != n.Sizes[0] {
			return nil, errors.NewDimensionError("Network.Predict", n.Sizes[0], len(f.Data), 1)
		}
		preds[i] = n.forward(f.Data, nil)
	}
	return preds, nil
}

// Fit trains the network with mini-batch SGD on the Huber loss.
func (n *Network) Fit(x []dataset.Frame, y []float64) error {
	if len(x) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Network.Fit")
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("Network.Fit", len(x), len(y), 0)
	}
	for _, f := range x {
		if len(f.Data) != n.Sizes[0] {
			return errors.NewDimensionError("Network.Fit", n.Sizes[0], len(f.Data), 1)
		}
	}

	cfg := n.Cfg
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		n.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for start := 0; start < len(order); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(order) {
				end = len(order)
			}
			n.updateBatch(x, y, order[start:end])
		}

		loss, err := n.meanLoss(x, y)
		if err != nil {
			return err
		}
		slog.Debug("epoch finished",
			tlog.OperationKey, "fit",
			tlog.EpochKey, epoch,
			tlog.LossKey, loss,
		)
	}

	n.SetFitted()
	return nil
}

// updateBatch accumulates Huber-loss gradients over one mini-batch and
// applies a single SGD step.
func (n *Network) updateBatch(x []dataset.Frame, y []float64, idxs []int) {
	layers := len(n.Sizes) - 1

	gradW := make([][]float64, layers)
	gradB := make([][]float64, layers)
	for l := 0; l < layers; l++ {
		gradW[l] = make([]float64, len(n.W[l]))
		gradB[l] = make([]float64, len(n.B[l]))
	}

	var acts [][]float64
	for _, idx := range idxs {
		pred := n.forward(x[idx].Data, &acts)

		// delta for the linear output unit
		delta := []float64{metrics.HuberGradient(y[idx], pred, n.Cfg.HuberDelta)}

		for l := layers - 1; l >= 0; l-- {
			in := n.Sizes[l]
			prev := acts[l]
			for j, d := range delta {
				row := gradW[l][j*in : (j+1)*in]
				for i, a := range prev {
					row[i] += d * a
				}
				gradB[l][j] += d
			}
			if l == 0 {
				break
			}
			// propagate through the ReLU of layer l-1
			next := make([]float64, in)
			for i := 0; i < in; i++ {
				if prev[i] <= 0 {
					continue
				}
				var sum float64
				for j, d := range delta {
					sum += n.W[l][j*in+i] * d
				}
				next[i] = sum
			}
			delta = next
		}
	}

	step := n.Cfg.LearningRate / float64(len(idxs))
	for l := 0; l < layers; l++ {
		for i, g := range gradW[l] {
			n.W[l][i] -= step * g
		}
		for i, g := range gradB[l] {
			n.B[l][i] -= step * g
		}
	}
}

// meanLoss evaluates the mean Huber loss over the whole set.
func (n *Network) meanLoss(x []dataset.Frame, y []float64) (float64, error) {
	preds := make([]float64, len(x))
	for i, f := range x {
		preds[i] = n.forward(f.Data, nil)
	}
	return metrics.HuberLoss(mat.NewVecDense(len(y), y), mat.NewVecDense(len(preds), preds), n.Cfg.HuberDelta)
}

// networkState is the exported persistence snapshot; BaseEstimator and the
// RNG stay out of the encoding.
type networkState struct {
	Cfg   Config
	Sizes []int
	W     [][]float64
	B     [][]float64
}

// GobEncode implements gob.GobEncoder.
func (n *Network) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(networkState{Cfg: n.Cfg, Sizes: n.Sizes, W: n.W, B: n.B}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. A decoded network is ready for
// inference.
func (n *Network) GobDecode(p []byte) error {
	var state networkState
	if err := gob.NewDecoder(bytes.NewReader(p)).Decode(&state); err != nil {
		return err
	}
	n.Cfg = state.Cfg
	n.Sizes = state.Sizes
	n.W = state.W
	n.B = state.B
	n.rng = rand.New(rand.NewSource(state.Cfg.Seed))
	n.SetFitted()
	return nil
}
