package dataset

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/YuminosukeSato/tumblelab/h5io"
)

func randomFrame(rng *rand.Rand, rows, cols int) Frame {
	g := h5io.NewGrid(rows, cols)
	for i := range g.Data {
		g.Data[i] = float64(rng.Intn(5))
	}
	return frameFromGrid(g)
}

func TestRollMovesPixels(t *testing.T) {
	g := h5io.NewGrid(4, 4)
	g.Set(0, 0, 1)
	f := frameFromGrid(g)

	rolled := f.Roll(1, 2)
	if rolled.At(1, 2) != 1 {
		t.Errorf("pixel (0,0) should land at (1,2), got frame %v", rolled.Data)
	}
	if rolled.At(0, 0) != 0 {
		t.Errorf("origin should be cleared after roll")
	}
}

func TestRollWrapsAround(t *testing.T) {
	g := h5io.NewGrid(3, 3)
	g.Set(2, 2, 7)
	f := frameFromGrid(g)

	rolled := f.Roll(1, 1)
	if rolled.At(0, 0) != 7 {
		t.Errorf("pixel (2,2) should wrap to (0,0), got %v", rolled.Data)
	}
}

func TestRollIsBijective(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := randomFrame(rng, 128, 128)

	// forward then inverse shift reconstructs the original exactly
	back := f.Roll(42, 42).Roll(-42, -42)
	if !reflect.DeepEqual(f.Data, back.Data) {
		t.Error("Roll(42,42) then Roll(-42,-42) did not reconstruct the frame")
	}

	// complement modulo the dimension also inverts
	comp := f.Roll(42, 42).Roll(128-42, 128-42)
	if !reflect.DeepEqual(f.Data, comp.Data) {
		t.Error("Roll(42,42) then Roll(86,86) did not reconstruct a 128x128 frame")
	}
}

func TestRollFullPeriodIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	f := randomFrame(rng, 16, 16)
	if !reflect.DeepEqual(f.Data, f.Roll(16, 16).Data) {
		t.Error("rolling by the full dimension should be the identity")
	}
}

func TestFrameShape(t *testing.T) {
	f := frameFromGrid(h5io.NewGrid(128, 64))
	if f.Shape() != [3]int{128, 64, 1} {
		t.Errorf("Shape = %v, want [128 64 1]", f.Shape())
	}
}
