// Command tumblegen synthesizes the HDF5 dataset containers the loader
// expects: for every (alpha, density) pair on the simulation grid it runs
// run-and-tumble walkers on a periodic square lattice and stores one keyed
// 2D frame per sampled instant in dataset_tumble_<alpha>_<density>.h5.
//
// Usage:
//
//	tumblegen -out no_roll_data -size 128 -frames 50 -seed 7
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/YuminosukeSato/tumblelab/core/parallel"
	"github.com/YuminosukeSato/tumblelab/dataset"
	"github.com/YuminosukeSato/tumblelab/h5io"
	"github.com/YuminosukeSato/tumblelab/pkg/log"
)

// orientations is the number of lattice directions; frames store 0 for an
// empty site and 1..orientations for an occupied one.
const orientations = 4

// direction deltas indexed by orientation-1: right, up, left, down.
var dr = [orientations]int{0, -1, 0, 1}
var dc = [orientations]int{1, 0, -1, 0}

func main() {
	outDir := flag.String("out", dataset.DefaultDir, "output directory for dataset containers")
	size := flag.Int("size", 128, "lattice side length")
	frames := flag.Int("frames", 50, "frames to record per container")
	warmup := flag.Int("warmup", 200, "relaxation sweeps before recording")
	interval := flag.Int("interval", 10, "sweeps between recorded frames")
	seed := flag.Int64("seed", 0, "base RNG seed (0 picks a time-based seed)")
	loglevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.SetupLogger(*loglevel)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if err := run(*outDir, *size, *frames, *warmup, *interval, *seed); err != nil {
		slog.Error("generation failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

// pair is one point of the (alpha, density) simulation grid.
type pair struct {
	alpha   float64
	density float64
}

func run(outDir string, size, frames, warmup, interval int, seed int64) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var pairs []pair
	for _, a := range dataset.DefaultAlphas() {
		for _, d := range dataset.DefaultDensities() {
			pairs = append(pairs, pair{alpha: a, density: d})
		}
	}

	start := time.Now()
	var mu sync.Mutex
	var firstErr error

	parallel.Parallelize(len(pairs), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := pairs[i]
			rng := rand.New(rand.NewSource(seed + int64(i)))
			path := filepath.Join(outDir, dataset.FileName(p.alpha, p.density))
			if err := writeContainer(path, p, size, frames, warmup, interval, rng); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
		}
	})
	if firstErr != nil {
		return firstErr
	}

	slog.Info("dataset generated",
		log.OperationKey, "generate",
		log.FilesKey, len(pairs),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// writeContainer simulates one (alpha, density) pair and stores its sampled
// frames under keys frame_000, frame_001, ...
func writeContainer(path string, p pair, size, frames, warmup, interval int, rng *rand.Rand) error {
	sim := newLattice(size, p.density, rng)

	for s := 0; s < warmup; s++ {
		sim.sweep(p.alpha, rng)
	}

	c, err := h5io.Create(path)
	if err != nil {
		return err
	}
	defer c.Close()

	for k := 0; k < frames; k++ {
		if err := c.WriteGrid(fmt.Sprintf("frame_%03d", k), sim.snapshot()); err != nil {
			return err
		}
		for s := 0; s < interval; s++ {
			sim.sweep(p.alpha, rng)
		}
	}
	return nil
}

// lattice is a periodic square grid of exclusive walkers. cells holds 0 for
// empty or the walker's orientation 1..orientations.
type lattice struct {
	size  int
	cells []int
	// walkers indexes the occupied cells so sweeps touch particles, not sites
	walkers []int
}

// newLattice fills a size x size grid to the requested density with randomly
// placed, randomly oriented walkers.
func newLattice(size int, density float64, rng *rand.Rand) *lattice {
	n := size * size
	l := &lattice{size: size, cells: make([]int, n)}

	count := int(density * float64(n))
	for _, site := range rng.Perm(n)[:count] {
		l.cells[site] = 1 + rng.Intn(orientations)
		l.walkers = append(l.walkers, site)
	}
	return l
}

// sweep advances every walker once in random order. With probability alpha a
// walker tumbles to a fresh random orientation; it then steps one site along
// its orientation if the target is free.
func (l *lattice) sweep(alpha float64, rng *rand.Rand) {
	rng.Shuffle(len(l.walkers), func(i, j int) {
		l.walkers[i], l.walkers[j] = l.walkers[j], l.walkers[i]
	})

	for w, site := range l.walkers {
		o := l.cells[site]
		if rng.Float64() < alpha {
			o = 1 + rng.Intn(orientations)
			l.cells[site] = o
		}

		r, c := site/l.size, site%l.size
		nr := mod(r+dr[o-1], l.size)
		nc := mod(c+dc[o-1], l.size)
		target := nr*l.size + nc
		if l.cells[target] != 0 {
			continue
		}
		l.cells[target] = o
		l.cells[site] = 0
		l.walkers[w] = target
	}
}

// snapshot copies the current occupancy into a float grid.
func (l *lattice) snapshot() h5io.Grid {
	g := h5io.NewGrid(l.size, l.size)
	for i, v := range l.cells {
		g.Data[i] = float64(v)
	}
	return g
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
