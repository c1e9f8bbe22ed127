// Command tumbleval runs persisted regression models over a validation split
// of the simulated dataset, reports overlap / spread / correlation statistics
// and renders the violin plot of prediction error per tumbling rate.
//
// Usage:
//
//	tumbleval -data no_roll_data -models models -names tumble_a,tumble_b -plot violin.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/YuminosukeSato/tumblelab/dataset"
	"github.com/YuminosukeSato/tumblelab/eval"
	"github.com/YuminosukeSato/tumblelab/pkg/log"
	"github.com/YuminosukeSato/tumblelab/regress"
)

func main() {
	dataDir := flag.String("data", dataset.DefaultDir, "directory containing dataset containers")
	modelDir := flag.String("models", "models", "directory containing persisted models")
	names := flag.String("names", "", "comma-separated model names to evaluate (required)")
	last := flag.Int("last", dataset.DefaultValidationSize, "number of tail samples held out for validation")
	orientation := flag.Bool("orientation", false, "keep orientation intensity instead of binarizing")
	scrambled := flag.Bool("scrambled", false, "scramble binarized pixels with quarter-step noise")
	seed := flag.Int64("seed", 0, "dataset shuffle seed (0 picks a time-based seed)")
	tol := flag.Float64("tol", eval.DefaultTolerance, "overlap tolerance around each true label")
	plotPath := flag.String("plot", "violin.png", "output path for the violin plot (empty disables)")
	train := flag.Bool("train", false, "train each named model on the training split before evaluating")
	epochs := flag.Int("epochs", 0, "training epochs when -train is set (0 uses the regress default)")
	loglevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.SetupLogger(*loglevel)

	modelNames := splitNames(*names)
	if len(modelNames) == 0 {
		fmt.Fprintln(os.Stderr, "tumbleval: -names requires at least one model name")
		flag.Usage()
		os.Exit(2)
	}

	cfg := runConfig{
		dataDir:     *dataDir,
		modelDir:    *modelDir,
		names:       modelNames,
		last:        *last,
		orientation: *orientation,
		scrambled:   *scrambled,
		seed:        *seed,
		tol:         *tol,
		plotPath:    *plotPath,
		train:       *train,
		epochs:      *epochs,
	}
	if err := run(cfg); err != nil {
		slog.Error("evaluation failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

type runConfig struct {
	dataDir     string
	modelDir    string
	names       []string
	last        int
	orientation bool
	scrambled   bool
	seed        int64
	tol         float64
	plotPath    string
	train       bool
	epochs      int
}

func run(cfg runConfig) error {
	opts := dataset.Options{
		Dir:         cfg.dataDir,
		Orientation: cfg.orientation,
		Scrambled:   cfg.scrambled,
	}
	if cfg.seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.seed))
	}

	ds, err := dataset.Load(opts)
	if err != nil {
		return err
	}

	split, err := dataset.Split(ds.Frames, ds.Labels, cfg.last)
	if err != nil {
		return err
	}

	if cfg.train {
		if err := trainModels(cfg, split); err != nil {
			return err
		}
	}

	preds, actual, err := regress.PredictMulti(cfg.modelDir, cfg.names, split.XVal, split.YVal)
	if err != nil {
		return err
	}

	summary, err := eval.Evaluate(preds, actual, cfg.tol)
	if err != nil {
		return err
	}
	fmt.Println(summary)

	if cfg.plotPath == "" {
		return nil
	}
	style := eval.DefaultPlotConfig()
	p, err := eval.ViolinPlot(preds, actual, style)
	if err != nil {
		return err
	}
	if err := eval.SavePlot(p, style, cfg.plotPath); err != nil {
		return err
	}
	slog.Info("violin plot written", "path", cfg.plotPath)
	return nil
}

// trainModels fits one network per requested name on the training split and
// persists it, offsetting the seed per model so an ensemble does not collapse
// into identical copies.
func trainModels(cfg runConfig, split *dataset.SplitResult) error {
	if len(split.XTrain) == 0 {
		return fmt.Errorf("tumbleval: no training samples left after holding out %d", cfg.last)
	}
	if err := os.MkdirAll(cfg.modelDir, 0o755); err != nil {
		return err
	}
	inputDim := len(split.XTrain[0].Data)
	for i, name := range cfg.names {
		n, err := regress.New(inputDim, regress.Config{
			Epochs: cfg.epochs,
			Seed:   cfg.seed + int64(i),
		})
		if err != nil {
			return err
		}
		if err := n.Fit(split.XTrain, split.YTrain); err != nil {
			return err
		}
		if err := n.Save(cfg.modelDir, name); err != nil {
			return err
		}
		slog.Info("model trained", "name", name)
	}
	return nil
}

// splitNames parses the comma-separated -names value, dropping empties.
func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
