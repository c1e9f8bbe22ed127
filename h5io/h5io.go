// Package h5io reads and writes the HDF5 frame containers produced by the
// run-and-tumble simulations. Each container maps dataset keys (one per
// simulation instant) to a 2D numeric grid.
package h5io

import (
	"sort"

	"gonum.org/v1/hdf5"

	"github.com/YuminosukeSato/tumblelab/pkg/errors"
)

// Grid is a dense 2D array in row-major order.
type Grid struct {
	Rows int
	Cols int
	Data []float64
}

// At returns the value at (r, c).
func (g Grid) At(r, c int) float64 {
	return g.Data[r*g.Cols+c]
}

// Set stores v at (r, c).
func (g *Grid) Set(r, c int, v float64) {
	g.Data[r*g.Cols+c] = v
}

// NewGrid allocates a zeroed rows x cols grid.
func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// Container is an open HDF5 frame container.
type Container struct {
	file *hdf5.File
}

// Open opens an existing container for reading.
func Open(path string) (*Container, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, errors.Wrapf(err, "h5io: open %s", path)
	}
	return &Container{file: f}, nil
}

// Create creates (or truncates) a container for writing.
func Create(path string) (*Container, error) {
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, errors.Wrapf(err, "h5io: create %s", path)
	}
	return &Container{file: f}, nil
}

// Close releases the underlying file handle.
func (c *Container) Close() error {
	return c.file.Close()
}

// Keys returns the dataset names in the container root, sorted so iteration
// order is deterministic across platforms.
func (c *Container) Keys() ([]string, error) {
	n, err := c.file.NumObjects()
	if err != nil {
		return nil, errors.Wrap(err, "h5io: enumerate objects")
	}
	keys := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		name, err := c.file.ObjectNameByIndex(i)
		if err != nil {
			return nil, errors.Wrapf(err, "h5io: object name at %d", i)
		}
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys, nil
}

// ReadGrid reads one keyed 2D dataset into memory.
func (c *Container) ReadGrid(key string) (Grid, error) {
	dset, err := c.file.OpenDataset(key)
	if err != nil {
		return Grid{}, errors.Wrapf(err, "h5io: open dataset %s", key)
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return Grid{}, errors.Wrapf(err, "h5io: extent of dataset %s", key)
	}
	if len(dims) != 2 {
		return Grid{}, errors.NewDimensionError("h5io.ReadGrid", 2, len(dims), 1)
	}

	g := NewGrid(int(dims[0]), int(dims[1]))
	if err := dset.Read(&g.Data); err != nil {
		return Grid{}, errors.Wrapf(err, "h5io: read dataset %s", key)
	}
	return g, nil
}

// WriteGrid stores a 2D grid under the given key.
func (c *Container) WriteGrid(key string, g Grid) error {
	if len(g.Data) != g.Rows*g.Cols {
		return errors.NewDimensionError("h5io.WriteGrid", g.Rows*g.Cols, len(g.Data), 1)
	}

	space, err := hdf5.CreateSimpleDataspace([]uint{uint(g.Rows), uint(g.Cols)}, nil)
	if err != nil {
		return errors.Wrapf(err, "h5io: dataspace for %s", key)
	}
	defer space.Close()

	dset, err := c.file.CreateDataset(key, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return errors.Wrapf(err, "h5io: create dataset %s", key)
	}
	defer dset.Close()

	if err := dset.Write(&g.Data); err != nil {
		return errors.Wrapf(err, "h5io: write dataset %s", key)
	}
	return nil
}

// ReadAll reads every keyed grid in the container, in key order. It returns
// the keys alongside the grids so labels can be traced back to frames.
func (c *Container) ReadAll() ([]string, []Grid, error) {
	keys, err := c.Keys()
	if err != nil {
		return nil, nil, err
	}
	grids := make([]Grid, 0, len(keys))
	for _, key := range keys {
		g, err := c.ReadGrid(key)
		if err != nil {
			return nil, nil, err
		}
		grids = append(grids, g)
	}
	return keys, grids, nil
}
