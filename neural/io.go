package neural

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Model file identification.
const (
	ModelFormat  = "seeker-qnet"
	ModelVersion = 1
)

var (
	// ErrIncompatibleModel means the stored network has a different layout than expected.
	ErrIncompatibleModel = errors.New("neural: incompatible model")
	// ErrMalformedModel means the stored data could not be decoded into a network.
	ErrMalformedModel = errors.New("neural: malformed model")
)

// ModelFile is the persisted form of a QNetwork.
// Weights[l] is row-major fanIn x fanOut.
type ModelFile struct {
	Format      string      `json:"format"`
	Version     int         `json:"version"`
	Layers      []int       `json:"layers"`
	Activations []string    `json:"activations"`
	Weights     [][]float64 `json:"weights"`
	Biases      [][]float64 `json:"biases"`
}

// Save writes the network parameters to w.
func (n *QNetwork) Save(w io.Writer) error {
	mf := ModelFile{
		Format:      ModelFormat,
		Version:     ModelVersion,
		Layers:      n.arch.Layers(),
		Activations: n.arch.Activations(),
		Weights:     make([][]float64, len(n.Weights)),
		Biases:      make([][]float64, len(n.Biases)),
	}
	for l := range n.Weights {
		mf.Weights[l] = mat.DenseCopyOf(n.Weights[l]).RawMatrix().Data
		mf.Biases[l] = append([]float64(nil), n.Biases[l].RawRowView(0)...)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mf); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	return nil
}

// LoadModel decodes a network from r and checks it against want.
// A decoding failure wraps ErrMalformedModel; a layout mismatch wraps ErrIncompatibleModel.
func LoadModel(r io.Reader, want Architecture) (*QNetwork, error) {
	var mf ModelFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}
	if mf.Format != ModelFormat {
		return nil, fmt.Errorf("%w: format %q", ErrMalformedModel, mf.Format)
	}
	if mf.Version != ModelVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrIncompatibleModel, mf.Version, ModelVersion)
	}

	layers := want.Layers()
	if len(mf.Layers) != len(layers) {
		return nil, fmt.Errorf("%w: layers %v, want %v", ErrIncompatibleModel, mf.Layers, layers)
	}
	for i := range layers {
		if mf.Layers[i] != layers[i] {
			return nil, fmt.Errorf("%w: layers %v, want %v", ErrIncompatibleModel, mf.Layers, layers)
		}
	}
	acts := want.Activations()
	if len(mf.Activations) != len(acts) {
		return nil, fmt.Errorf("%w: activations %v, want %v", ErrIncompatibleModel, mf.Activations, acts)
	}
	for i := range acts {
		if mf.Activations[i] != acts[i] {
			return nil, fmt.Errorf("%w: activations %v, want %v", ErrIncompatibleModel, mf.Activations, acts)
		}
	}
	if len(mf.Weights) != len(layers)-1 || len(mf.Biases) != len(layers)-1 {
		return nil, fmt.Errorf("%w: %d weight and %d bias tensors for %d layers",
			ErrMalformedModel, len(mf.Weights), len(mf.Biases), len(layers))
	}

	n := &QNetwork{
		arch: Architecture{
			Inputs:  want.Inputs,
			Hidden:  append([]int(nil), want.Hidden...),
			Outputs: want.Outputs,
		},
		Weights: make([]*mat.Dense, len(layers)-1),
		Biases:  make([]*mat.Dense, len(layers)-1),
	}
	for l := 0; l < len(layers)-1; l++ {
		fanIn, fanOut := layers[l], layers[l+1]
		if len(mf.Weights[l]) != fanIn*fanOut {
			return nil, fmt.Errorf("%w: layer %d has %d weights, want %d",
				ErrMalformedModel, l, len(mf.Weights[l]), fanIn*fanOut)
		}
		if len(mf.Biases[l]) != fanOut {
			return nil, fmt.Errorf("%w: layer %d has %d biases, want %d",
				ErrMalformedModel, l, len(mf.Biases[l]), fanOut)
		}
		if !finite(mf.Weights[l]...) || !finite(mf.Biases[l]...) {
			return nil, fmt.Errorf("%w: layer %d contains non-finite values", ErrMalformedModel, l)
		}
		n.Weights[l] = mat.NewDense(fanIn, fanOut, append([]float64(nil), mf.Weights[l]...))
		n.Biases[l] = mat.NewDense(1, fanOut, append([]float64(nil), mf.Biases[l]...))
	}
	return n, nil
}

// SaveFile writes the network to path, creating parent directories.
// The file is written to a temporary name first and renamed into place.
func (n *QNetwork) SaveFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating model directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	if err := n.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing model file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming model file: %w", err)
	}
	return nil
}

// LoadFile reads a network from path.
func LoadFile(path string, want Architecture) (*QNetwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()
	return LoadModel(f, want)
}
