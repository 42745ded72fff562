package index

import (
	"fmt"
	"os"

	"github.com/kass/go-lpf/pkg/lpf"
)

// SaveToFile writes the indexed features to a file as an LPF
// FeatureCollection document.
func (x *Index) SaveToFile(filename string) error {
	features, err := x.SearchBox(world)
	if err != nil {
		return fmt.Errorf("failed to extract features: %w", err)
	}

	fc := &lpf.FeatureCollection{
		Context:  lpf.DefaultContext,
		Features: features,
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := lpf.Encode(file, fc); err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	return nil
}

// LoadFromFile loads an LPF document and rebuilds the index from it.
// The existing contents are discarded.
func (x *Index) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fc, err := lpf.Decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode features: %w", err)
	}

	x.Clear()
	x.IndexFeatures(fc.Features)
	return nil
}
