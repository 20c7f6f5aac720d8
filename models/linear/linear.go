// Package linear implements least-squares regression, with optional L2
// regularisation, on gonum dense matrices.
package linear

import (
	"encoding/gob"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/core/factory"
	"github.com/kfarnes/mast/core/model"
)

// TypeName is the registry identifier for this model.
const TypeName = "linear"

const stateFile = "linear.gob"

// Config holds the constructor parameters.
type Config struct {
	// FitIntercept centers the data and learns a per-target intercept.
	FitIntercept bool `json:"fit_intercept"`
	// L2 is the ridge penalty. Zero means ordinary least squares.
	L2 float64 `json:"l2"`
}

// Regressor solves min ||Xw - y||^2 + l2*||w||^2 column-wise, supporting
// multiple target columns in one fit.
type Regressor struct {
	model.State

	conf      Config
	weights   *mat.Dense // nFeatures x nTargets
	intercept []float64  // nTargets
	nFeatures int
}

// New returns an untrained regressor for the given configuration.
func New(conf Config) *Regressor {
	if conf.L2 < 0 {
		conf.L2 = 0
	}
	return &Regressor{conf: conf}
}

// NewFromConf builds a Regressor from raw configuration. It is the factory
// registered under TypeName.
func NewFromConf(conf map[string]any) (model.Model, error) {
	c := Config{FitIntercept: true}
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	return New(c), nil
}

// Fit solves the least-squares system for x (samples by features) against y
// (samples by targets).
func (r *Regressor) Fit(x, y mat.Matrix) error {
	n, p := x.Dims()
	yn, m := y.Dims()
	if n == 0 || p == 0 {
		return model.NewTrainingErrorf(TypeName, "empty feature matrix (%dx%d)", n, p)
	}
	if yn != n {
		return model.NewTrainingErrorf(TypeName, "x has %d rows, y has %d", n, yn)
	}

	a := mat.DenseCopyOf(x)
	b := mat.DenseCopyOf(y)

	var xMean, yMean []float64
	if r.conf.FitIntercept {
		xMean = columnMeans(a)
		yMean = columnMeans(b)
		subtractRow(a, xMean)
		subtractRow(b, yMean)
	}

	if r.conf.L2 > 0 {
		a, b = ridgeAugment(a, b, r.conf.L2)
	}

	var w mat.Dense
	if err := w.Solve(a, b); err != nil {
		return model.NewTrainingError(TypeName, err)
	}

	intercept := make([]float64, m)
	if r.conf.FitIntercept {
		for j := 0; j < m; j++ {
			dot := 0.0
			for i := 0; i < p; i++ {
				dot += xMean[i] * w.At(i, j)
			}
			intercept[j] = yMean[j] - dot
		}
	}

	r.weights = &w
	r.intercept = intercept
	r.nFeatures = p
	r.SetFitted()
	return nil
}

// Predict returns x times the learned weights plus the intercept.
func (r *Regressor) Predict(x mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, model.NewInferenceError(TypeName, model.ErrNotFitted)
	}
	n, p := x.Dims()
	if p != r.nFeatures {
		return nil, model.NewInferenceErrorf(TypeName, "expected %d features, got %d", r.nFeatures, p)
	}
	var out mat.Dense
	out.Mul(x, r.weights)
	for i := 0; i < n; i++ {
		for j := range r.intercept {
			out.Set(i, j, out.At(i, j)+r.intercept[j])
		}
	}
	return &out, nil
}

// Weights returns a copy of the learned coefficient matrix, or nil before Fit.
func (r *Regressor) Weights() *mat.Dense {
	if r.weights == nil {
		return nil
	}
	return mat.DenseCopyOf(r.weights)
}

// Intercept returns a copy of the per-target intercepts, or nil before Fit.
func (r *Regressor) Intercept() []float64 {
	if r.intercept == nil {
		return nil
	}
	out := make([]float64, len(r.intercept))
	copy(out, r.intercept)
	return out
}

// Type returns the registry identifier.
func (r *Regressor) Type() string { return TypeName }

// Params returns the constructor parameters.
func (r *Regressor) Params() map[string]any {
	return map[string]any{
		"fit_intercept": r.conf.FitIntercept,
		"l2":            r.conf.L2,
	}
}

type snapshot struct {
	Conf      Config
	Rows      int
	Cols      int
	Weights   []float64
	Intercept []float64
	NFeatures int
	Trained   bool
}

// Save writes the trained state to dir.
func (r *Regressor) Save(dir string) error {
	snap := snapshot{
		Conf:      r.conf,
		Intercept: r.intercept,
		NFeatures: r.nFeatures,
		Trained:   r.IsFitted(),
	}
	if r.weights != nil {
		snap.Rows, snap.Cols = r.weights.Dims()
		snap.Weights = make([]float64, 0, snap.Rows*snap.Cols)
		for i := 0; i < snap.Rows; i++ {
			snap.Weights = append(snap.Weights, r.weights.RawRowView(i)...)
		}
	}
	f, err := os.Create(filepath.Join(dir, stateFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

// Load restores the trained state from dir.
func (r *Regressor) Load(dir string) error {
	f, err := os.Open(filepath.Join(dir, stateFile))
	if err != nil {
		return err
	}
	defer f.Close()
	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return err
	}
	r.conf = snap.Conf
	r.intercept = snap.Intercept
	r.nFeatures = snap.NFeatures
	if snap.Rows > 0 {
		r.weights = mat.NewDense(snap.Rows, snap.Cols, snap.Weights)
	} else {
		r.weights = nil
	}
	r.Trained = snap.Trained
	return nil
}

func columnMeans(a *mat.Dense) []float64 {
	n, p := a.Dims()
	means := make([]float64, p)
	for j := 0; j < p; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += a.At(i, j)
		}
		means[j] = sum / float64(n)
	}
	return means
}

func subtractRow(a *mat.Dense, row []float64) {
	n, p := a.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			a.Set(i, j, a.At(i, j)-row[j])
		}
	}
}

// ridgeAugment appends sqrt(l2)*I rows to a and zero rows to b so the
// ordinary solver yields the ridge solution.
func ridgeAugment(a, b *mat.Dense, l2 float64) (*mat.Dense, *mat.Dense) {
	n, p := a.Dims()
	_, m := b.Dims()
	lam := math.Sqrt(l2)
	aug := mat.NewDense(n+p, p, nil)
	aug.Slice(0, n, 0, p).(*mat.Dense).Copy(a)
	for j := 0; j < p; j++ {
		aug.Set(n+j, j, lam)
	}
	baug := mat.NewDense(n+p, m, nil)
	baug.Slice(0, n, 0, m).(*mat.Dense).Copy(b)
	return aug, baug
}
