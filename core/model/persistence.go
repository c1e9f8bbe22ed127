package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ModelExt is the file extension used for persisted models.
const ModelExt = ".gob"

// SaveModel writes a model to a file using encoding/gob.
//
// Example:
//
//	var net regress.Network
//	// ... train ...
//	err := model.SaveModel(&net, "models/tumble_cnn.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	return nil
}

// LoadModel reads a model from a file written by SaveModel. The target must
// be a pointer to the concrete model type.
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(model); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}

	return nil
}

// SaveModelToWriter encodes a model onto an io.Writer.
func SaveModelToWriter(model interface{}, w io.Writer) error {
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// LoadModelFromReader decodes a model from an io.Reader.
func LoadModelFromReader(model interface{}, r io.Reader) error {
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(model); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}
	return nil
}

// ModelPath resolves the path of a named model inside a models directory,
// e.g. ModelPath("models", "tumble_cnn") -> "models/tumble_cnn.gob".
func ModelPath(dir, name string) string {
	return filepath.Join(dir, name+ModelExt)
}
