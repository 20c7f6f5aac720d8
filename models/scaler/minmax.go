// Package scaler implements feature scaling transformers. Transformers
// satisfy the same contract as predictive models: Fit learns the per-column
// statistics and Predict applies the transform.
package scaler

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/core/factory"
	"github.com/kfarnes/mast/core/model"
)

// TypeName is the registry identifier for the min-max scaler.
const TypeName = "minmax"

const stateFile = "minmax.gob"

// Config holds the constructor parameters.
type Config struct {
	// Min and Max bound the output range, defaulting to [0, 1].
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MinMax rescales each feature column into the configured range.
type MinMax struct {
	model.State

	conf    Config
	dataMin []float64
	dataMax []float64
}

// New returns an unfitted scaler for the given configuration.
func New(conf Config) *MinMax {
	if conf.Min == 0 && conf.Max == 0 {
		conf.Max = 1
	}
	return &MinMax{conf: conf}
}

// NewFromConf builds a MinMax from raw configuration. It is the factory
// registered under TypeName.
func NewFromConf(conf map[string]any) (model.Model, error) {
	var c Config
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	if c.Max != 0 || c.Min != 0 {
		if c.Max <= c.Min {
			return nil, fmt.Errorf("%s: max %v must exceed min %v", TypeName, c.Max, c.Min)
		}
	}
	return New(c), nil
}

// Fit records the per-column minimum and maximum of x. The target matrix is
// ignored.
func (s *MinMax) Fit(x, _ mat.Matrix) error {
	n, p := x.Dims()
	if n == 0 || p == 0 {
		return model.NewTrainingErrorf(TypeName, "empty feature matrix (%dx%d)", n, p)
	}
	s.dataMin = make([]float64, p)
	s.dataMax = make([]float64, p)
	for j := 0; j < p; j++ {
		lo, hi := x.At(0, j), x.At(0, j)
		for i := 1; i < n; i++ {
			v := x.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		s.dataMin[j] = lo
		s.dataMax[j] = hi
	}
	s.SetFitted()
	return nil
}

// Predict rescales x into the configured output range.
func (s *MinMax) Predict(x mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, model.NewInferenceError(TypeName, model.ErrNotFitted)
	}
	n, p := x.Dims()
	if p != len(s.dataMin) {
		return nil, model.NewInferenceErrorf(TypeName, "expected %d features, got %d", len(s.dataMin), p)
	}
	span := s.conf.Max - s.conf.Min
	out := mat.NewDense(n, p, nil)
	for j := 0; j < p; j++ {
		scale := s.dataMax[j] - s.dataMin[j]
		if scale == 0 {
			// Constant columns map onto the lower bound.
			scale = 1
		}
		for i := 0; i < n; i++ {
			v := (x.At(i, j) - s.dataMin[j]) / scale
			out.Set(i, j, v*span+s.conf.Min)
		}
	}
	return out, nil
}

// Type returns the registry identifier.
func (s *MinMax) Type() string { return TypeName }

// Params returns the constructor parameters.
func (s *MinMax) Params() map[string]any {
	return map[string]any{
		"min": s.conf.Min,
		"max": s.conf.Max,
	}
}

type snapshot struct {
	Conf    Config
	DataMin []float64
	DataMax []float64
	Trained bool
}

// Save writes the fitted column statistics to dir.
func (s *MinMax) Save(dir string) error {
	snap := snapshot{Conf: s.conf, DataMin: s.dataMin, DataMax: s.dataMax, Trained: s.IsFitted()}
	f, err := os.Create(filepath.Join(dir, stateFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

// Load restores the fitted column statistics from dir.
func (s *MinMax) Load(dir string) error {
	f, err := os.Open(filepath.Join(dir, stateFile))
	if err != nil {
		return err
	}
	defer f.Close()
	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return err
	}
	s.conf = snap.Conf
	s.dataMin = snap.DataMin
	s.dataMax = snap.DataMax
	s.Trained = snap.Trained
	return nil
}
