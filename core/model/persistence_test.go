package model

import (
	"bytes"
	"path/filepath"
	"testing"
)

// dummyModel carries only exported state. Estimators embedding BaseEstimator
// must implement GobEncoder/GobDecoder themselves, since gob rejects embedded
// structs without exported fields.
type dummyModel struct {
	Weights []float64
	Bias    float64
}

func TestSaveLoadModel(t *testing.T) {
	dir := t.TempDir()
	path := ModelPath(dir, "dummy")

	in := &dummyModel{Weights: []float64{0.5, -1.25, 3.0}, Bias: 0.125}
	if err := SaveModel(in, path); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}

	var out dummyModel
	if err := LoadModel(&out, path); err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if out.Bias != in.Bias || len(out.Weights) != len(in.Weights) {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", out, *in)
	}
	for i := range in.Weights {
		if out.Weights[i] != in.Weights[i] {
			t.Errorf("Weights[%d] = %v, want %v", i, out.Weights[i], in.Weights[i])
		}
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	var out dummyModel
	if err := LoadModel(&out, filepath.Join(t.TempDir(), "absent.gob")); err == nil {
		t.Fatal("expected error for missing model file")
	}
}

func TestSaveLoadModelRoundtripViaWriter(t *testing.T) {
	var buf bytes.Buffer
	in := &dummyModel{Weights: []float64{1, 2}, Bias: -4}
	if err := SaveModelToWriter(in, &buf); err != nil {
		t.Fatalf("SaveModelToWriter: %v", err)
	}
	var out dummyModel
	if err := LoadModelFromReader(&out, &buf); err != nil {
		t.Fatalf("LoadModelFromReader: %v", err)
	}
	if out.Bias != in.Bias {
		t.Errorf("Bias = %v, want %v", out.Bias, in.Bias)
	}
}

func TestModelPath(t *testing.T) {
	got := ModelPath("models", "tumble_cnn")
	want := filepath.Join("models", "tumble_cnn.gob")
	if got != want {
		t.Errorf("ModelPath = %q, want %q", got, want)
	}
}

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Error("new estimator should not be fitted")
	}
	e.SetFitted()
	if !e.IsFitted() {
		t.Error("SetFitted should mark estimator fitted")
	}
	e.Reset()
	if e.IsFitted() {
		t.Error("Reset should clear fitted state")
	}
}
