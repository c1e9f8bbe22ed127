package h5io

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridAccessors(t *testing.T) {
	g := NewGrid(2, 3)
	g.Set(0, 2, 4)
	g.Set(1, 0, 1)

	assert.Equal(t, 4.0, g.At(0, 2))
	assert.Equal(t, 1.0, g.At(1, 0))
	assert.Equal(t, 0.0, g.At(0, 0))
	assert.Len(t, g.Data, 6)
}

func TestContainerRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset_tumble_0.125_0.3.h5")

	w, err := Create(path)
	require.NoError(t, err)

	a := NewGrid(4, 5)
	for i := range a.Data {
		a.Data[i] = float64(i % 5)
	}
	b := NewGrid(4, 5)
	b.Set(3, 4, 2)

	require.NoError(t, w.WriteGrid("frame_0001", a))
	require.NoError(t, w.WriteGrid("frame_0000", b))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	keys, err := r.Keys()
	require.NoError(t, err)
	// sorted, regardless of write order
	assert.Equal(t, []string{"frame_0000", "frame_0001"}, keys)

	got, err := r.ReadGrid("frame_0001")
	require.NoError(t, err)
	assert.Equal(t, a.Rows, got.Rows)
	assert.Equal(t, a.Cols, got.Cols)
	assert.Equal(t, a.Data, got.Data)

	names, grids, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, grids, 2)
	assert.Equal(t, keys, names)
	assert.Equal(t, 2.0, grids[0].At(3, 4))
}

func TestWriteGridRejectsBadLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.h5")
	w, err := Create(path)
	require.NoError(t, err)
	defer w.Close()

	g := Grid{Rows: 2, Cols: 2, Data: []float64{1, 2, 3}}
	assert.Error(t, w.WriteGrid("frame_0000", g))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.h5"))
	assert.Error(t, err)
}
