// Package knn implements a k-nearest-neighbour regressor. Predictions are
// the (optionally distance-weighted) mean of the targets of the k training
// samples closest in Euclidean distance.
package knn

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/core/factory"
	"github.com/kfarnes/mast/core/model"
)

// TypeName is the registry identifier for this model.
const TypeName = "knn"

const stateFile = "knn.gob"

// Config holds the constructor parameters.
type Config struct {
	// K is the number of neighbours, defaulting to 5.
	K int `json:"k"`
	// Weighted averages neighbours by inverse distance instead of uniformly.
	Weighted bool `json:"weighted"`
}

// Regressor memorizes the training set and averages neighbour targets at
// prediction time.
type Regressor struct {
	model.State

	conf Config
	x    *mat.Dense // nSamples x nFeatures
	y    *mat.Dense // nSamples x nTargets
}

// New returns an untrained regressor for the given configuration.
func New(conf Config) *Regressor {
	if conf.K <= 0 {
		conf.K = 5
	}
	return &Regressor{conf: conf}
}

// NewFromConf builds a Regressor from raw configuration. It is the factory
// registered under TypeName.
func NewFromConf(conf map[string]any) (model.Model, error) {
	var c Config
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	return New(c), nil
}

// Fit stores copies of the training matrices.
func (r *Regressor) Fit(x, y mat.Matrix) error {
	n, p := x.Dims()
	yn, _ := y.Dims()
	if n == 0 || p == 0 {
		return model.NewTrainingErrorf(TypeName, "empty feature matrix (%dx%d)", n, p)
	}
	if yn != n {
		return model.NewTrainingErrorf(TypeName, "x has %d rows, y has %d", n, yn)
	}
	if n < r.conf.K {
		return model.NewTrainingErrorf(TypeName, "k=%d exceeds %d training samples", r.conf.K, n)
	}
	r.x = mat.DenseCopyOf(x)
	r.y = mat.DenseCopyOf(y)
	r.SetFitted()
	return nil
}

type neighbour struct {
	idx  int
	dist float64
}

// Predict averages the targets of the k nearest training samples per row.
func (r *Regressor) Predict(x mat.Matrix) (mat.Matrix, error) {
	if !r.IsFitted() {
		return nil, model.NewInferenceError(TypeName, model.ErrNotFitted)
	}
	n, p := x.Dims()
	_, trainP := r.x.Dims()
	if p != trainP {
		return nil, model.NewInferenceErrorf(TypeName, "expected %d features, got %d", trainP, p)
	}
	trainN, _ := r.x.Dims()
	_, m := r.y.Dims()
	out := mat.NewDense(n, m, nil)
	row := make([]float64, p)
	for i := 0; i < n; i++ {
		mat.Row(row, i, x)
		neighbours := make([]neighbour, trainN)
		for t := 0; t < trainN; t++ {
			neighbours[t] = neighbour{idx: t, dist: floats.Distance(row, r.x.RawRowView(t), 2)}
		}
		sort.Slice(neighbours, func(a, b int) bool { return neighbours[a].dist < neighbours[b].dist })
		r.average(neighbours[:r.conf.K], out, i)
	}
	return out, nil
}

// average fills out's row i with the aggregated targets of the neighbours.
func (r *Regressor) average(nb []neighbour, out *mat.Dense, i int) {
	_, m := r.y.Dims()
	weights := make([]float64, len(nb))
	total := 0.0
	for t, n := range nb {
		w := 1.0
		if r.conf.Weighted {
			// An exact match dominates all other neighbours.
			if n.dist == 0 {
				for j := 0; j < m; j++ {
					out.Set(i, j, r.y.At(n.idx, j))
				}
				return
			}
			w = 1 / n.dist
		}
		weights[t] = w
		total += w
	}
	for j := 0; j < m; j++ {
		sum := 0.0
		for t, n := range nb {
			sum += weights[t] * r.y.At(n.idx, j)
		}
		out.Set(i, j, sum/total)
	}
}

// Type returns the registry identifier.
func (r *Regressor) Type() string { return TypeName }

// Params returns the constructor parameters.
func (r *Regressor) Params() map[string]any {
	return map[string]any{
		"k":        r.conf.K,
		"weighted": r.conf.Weighted,
	}
}

type snapshot struct {
	Conf    Config
	XRows   int
	XCols   int
	X       []float64
	YRows   int
	YCols   int
	Y       []float64
	Trained bool
}

// Save writes the memorized training set to dir.
func (r *Regressor) Save(dir string) error {
	snap := snapshot{Conf: r.conf, Trained: r.IsFitted()}
	if r.x != nil {
		snap.XRows, snap.XCols = r.x.Dims()
		snap.X = flatten(r.x)
		snap.YRows, snap.YCols = r.y.Dims()
		snap.Y = flatten(r.y)
	}
	f, err := os.Create(filepath.Join(dir, stateFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

// Load restores the memorized training set from dir.
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
	if snap.XRows > 0 {
		r.x = mat.NewDense(snap.XRows, snap.XCols, snap.X)
		r.y = mat.NewDense(snap.YRows, snap.YCols, snap.Y)
	} else {
		r.x, r.y = nil, nil
	}
	r.Trained = snap.Trained
	return nil
}

func flatten(a *mat.Dense) []float64 {
	n, p := a.Dims()
	out := make([]float64, 0, n*p)
	for i := 0; i < n; i++ {
		out = append(out, a.RawRowView(i)...)
	}
	return out
}
