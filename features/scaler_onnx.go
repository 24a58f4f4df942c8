//go:build onnx

package features

import (
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXScaler runs a scaling pipeline exported to ONNX (e.g. a sklearn
// preprocessing pipeline via skl2onnx). Used when the fitted transform is
// more than a mean/scale pair; the JSON StandardScaler remains the default
// backend.
type ONNXScaler struct {
	session *ort.DynamicAdvancedSession
	dims    int
	input   string
	output  string
}

// NewONNXScaler loads an exported scaling pipeline. The shared onnxruntime
// library path can be overridden with ONNXRUNTIME_LIB.
func NewONNXScaler(modelPath string, dims int) (*ONNXScaler, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("modelPath is required")
	}
	if lib := os.Getenv("ONNXRUNTIME_LIB"); lib != "" {
		ort.SetSharedLibraryPath(lib)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}

	temp, err := ort.NewDynamicAdvancedSession(modelPath, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("open scaler model: %w", err)
	}
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		temp.Destroy()
		return nil, fmt.Errorf("inspect scaler model: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		temp.Destroy()
		return nil, fmt.Errorf("scaler model has no I/O bindings")
	}

	return &ONNXScaler{
		session: temp,
		dims:    dims,
		input:   inputs[0].Name,
		output:  outputs[0].Name,
	}, nil
}

func (s *ONNXScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != s.dims {
		return nil, fmt.Errorf("got %d values, want %d", len(values), s.dims)
	}

	row := make([]float32, len(values))
	for i, v := range values {
		row[i] = float32(v)
	}
	in, err := ort.NewTensor(ort.NewShape(1, int64(s.dims)), row)
	if err != nil {
		return nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(s.dims)))
	if err != nil {
		return nil, fmt.Errorf("build output tensor: %w", err)
	}
	defer out.Destroy()

	if err := s.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("run scaler model: %w", err)
	}

	scaled := out.GetData()
	result := make([]float64, len(scaled))
	for i, v := range scaled {
		result[i] = float64(v)
	}
	return result, nil
}

func (s *ONNXScaler) Dimensions() int { return s.dims }

// Close releases the onnxruntime session.
func (s *ONNXScaler) Close() {
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}
