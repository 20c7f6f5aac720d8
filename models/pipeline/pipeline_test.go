package pipeline_test

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/core/factory"
	"github.com/kfarnes/mast/core/model"
	"github.com/kfarnes/mast/models/linear"
	"github.com/kfarnes/mast/models/pipeline"
	"github.com/kfarnes/mast/models/scaler"
)

func newTestRegistry(t *testing.T) *factory.Registry[model.Model] {
	t.Helper()
	reg := factory.NewRegistry[model.Model]()
	reg.MustRegister(linear.TypeName, linear.NewFromConf)
	reg.MustRegister(scaler.TypeName, scaler.NewFromConf)
	return reg
}

func trainingSet() (*mat.Dense, *mat.Dense) {
	x := mat.NewDense(4, 1, []float64{0, 10, 20, 30})
	y := mat.NewDense(4, 1, []float64{1, 3, 5, 7})
	return x, y
}

func TestPipeline_ScaleThenRegress(t *testing.T) {
	reg := newTestRegistry(t)
	p, err := pipeline.New(reg, []factory.ModuleConfig{
		{Type: scaler.TypeName},
		{Type: linear.TypeName, Conf: map[string]any{"fit_intercept": true}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	x, y := trainingSet()
	if err := p.Fit(x, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	pred, err := p.Predict(mat.NewDense(1, 1, []float64{15}))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got := pred.At(0, 0); got < 3.9 || got > 4.1 {
		t.Fatalf("expected about 4, got %v", got)
	}
}

func TestPipeline_Errors(t *testing.T) {
	reg := newTestRegistry(t)
	if _, err := pipeline.New(reg, nil); err == nil {
		t.Fatal("expected error for empty steps")
	}
	_, err := pipeline.New(reg, []factory.ModuleConfig{{Type: "missing"}})
	if !errors.Is(err, factory.ErrUnknownType) {
		t.Fatalf("expected unknown type, got %v", err)
	}

	p, err := pipeline.New(reg, []factory.ModuleConfig{{Type: linear.TypeName}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := p.Predict(mat.NewDense(1, 1, []float64{0})); !errors.Is(err, model.ErrNotFitted) {
		t.Fatalf("expected not fitted, got %v", err)
	}
}

func TestPipeline_SaveLoadRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)
	steps := []factory.ModuleConfig{
		{Type: scaler.TypeName, Conf: map[string]any{"min": 0.0, "max": 1.0}},
		{Type: linear.TypeName},
	}
	p, err := pipeline.New(reg, steps)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	x, y := trainingSet()
	if err := p.Fit(x, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	dir := t.TempDir()
	if err := p.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh, err := pipeline.New(reg, steps)
	if err != nil {
		t.Fatalf("new fresh: %v", err)
	}
	if err := fresh.Load(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	probe := mat.NewDense(2, 1, []float64{5, 25})
	want, err := p.Predict(probe)
	if err != nil {
		t.Fatalf("predict original: %v", err)
	}
	got, err := fresh.Predict(probe)
	if err != nil {
		t.Fatalf("predict loaded: %v", err)
	}
	if !mat.Equal(want, got) {
		t.Fatalf("round trip changed predictions")
	}
}

func TestPipeline_ParamsRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)
	steps := []factory.ModuleConfig{
		{Type: scaler.TypeName},
		{Type: linear.TypeName, Conf: map[string]any{"l2": 2.0}},
	}
	p, err := pipeline.New(reg, steps)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	params := p.Params()
	var c pipeline.Config
	if err := factory.Decode(params, &c); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	if len(c.Steps) != 2 || c.Steps[1].Type != linear.TypeName {
		t.Fatalf("params did not round trip: %+v", c)
	}
	if c.Steps[1].Conf["l2"] != 2.0 {
		t.Fatalf("step conf lost: %+v", c.Steps[1].Conf)
	}
}
