package features

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scaler is a pre-fitted per-space scaling transform, fitted offline and
// loaded once at process start. It must be applied identically at
// write-time and query-time.
type Scaler interface {
	// Transform scales a raw feature row. len(values) must equal Dimensions.
	Transform(values []float64) ([]float64, error)

	// Dimensions returns the feature count the transform was fitted on.
	Dimensions() int
}

// StandardScaler centers and scales each feature column with the mean and
// scale vectors exported from the offline fitting run.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler builds a scaler from exported mean/scale vectors.
// Zero scale entries (constant training columns) are treated as 1 so the
// transform stays finite.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("mean has %d entries, scale has %d", len(mean), len(scale))
	}
	cleaned := make([]float64, len(scale))
	for i, s := range scale {
		if s == 0 {
			s = 1
		}
		cleaned[i] = s
	}
	return &StandardScaler{mean: append([]float64(nil), mean...), scale: cleaned}, nil
}

func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.mean) {
		return nil, fmt.Errorf("got %d values, scaler fitted on %d", len(values), len(s.mean))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

func (s *StandardScaler) Dimensions() int { return len(s.mean) }

// scalerArtifact is the on-disk JSON layout of an exported scaler.
type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LoadScaler reads a pre-fitted scaler artifact from disk.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler artifact: %w", err)
	}
	var artifact scalerArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse scaler artifact %s: %w", path, err)
	}
	return NewStandardScaler(artifact.Mean, artifact.Scale)
}

// IdentityScaler passes values through unchanged. Used in tests and for
// local runs before a fitted artifact exists.
type IdentityScaler struct {
	dims int
}

// NewIdentityScaler returns a pass-through scaler of the given dimension.
func NewIdentityScaler(dims int) *IdentityScaler {
	return &IdentityScaler{dims: dims}
}

func (s *IdentityScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != s.dims {
		return nil, fmt.Errorf("got %d values, want %d", len(values), s.dims)
	}
	return append([]float64(nil), values...), nil
}

func (s *IdentityScaler) Dimensions() int { return s.dims }
