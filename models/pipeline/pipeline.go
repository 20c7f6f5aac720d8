// Package pipeline composes registered model types into an ordered chain.
// Every step but the last acts as a transformer feeding the next step; the
// last step produces the pipeline's predictions. Step configurations are
// themselves resolved through the model registry, so pipelines nest.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/core/factory"
	"github.com/kfarnes/mast/core/model"
)

// TypeName is the registry identifier for this model.
const TypeName = "pipeline"

// Config holds the constructor parameters.
type Config struct {
	Steps []factory.ModuleConfig `json:"steps"`
}

// Pipeline chains fitted steps. It is itself a Model, so pipelines can be
// registered, saved, and loaded like any other type.
type Pipeline struct {
	model.State

	stepConfs []factory.ModuleConfig
	steps     []model.Model
}

// New builds a pipeline, resolving each step through the given registry.
func New(reg *factory.Registry[model.Model], steps []factory.ModuleConfig) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline requires at least one step")
	}
	built := make([]model.Model, len(steps))
	for i, sc := range steps {
		m, err := reg.Create(sc)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %d: %w", i, err)
		}
		built[i] = m
	}
	return &Pipeline{stepConfs: steps, steps: built}, nil
}

// NewFromConf builds a Pipeline from raw configuration against the default
// model registry. It is the factory registered under TypeName.
func NewFromConf(conf map[string]any) (model.Model, error) {
	var c Config
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	return New(model.DefaultRegistry, c.Steps)
}

// Steps exposes the built steps for inspection.
func (p *Pipeline) Steps() []model.Model { return p.steps }

// Fit trains each step in order, feeding every intermediate step's output
// into the next.
func (p *Pipeline) Fit(x, y mat.Matrix) error {
	cur := x
	for i, step := range p.steps {
		if err := step.Fit(cur, y); err != nil {
			return fmt.Errorf("pipeline step %d (%s): %w", i, step.Type(), err)
		}
		if i == len(p.steps)-1 {
			break
		}
		out, err := step.Predict(cur)
		if err != nil {
			return fmt.Errorf("pipeline step %d (%s): %w", i, step.Type(), err)
		}
		cur = out
	}
	p.SetFitted()
	return nil
}

// Predict threads x through every step.
func (p *Pipeline) Predict(x mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, model.NewInferenceError(TypeName, model.ErrNotFitted)
	}
	cur := x
	for i, step := range p.steps {
		out, err := step.Predict(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %d (%s): %w", i, step.Type(), err)
		}
		cur = out
	}
	return cur, nil
}

// Type returns the registry identifier.
func (p *Pipeline) Type() string { return TypeName }

// Params returns the step configurations in constructor form.
func (p *Pipeline) Params() map[string]any {
	steps := make([]map[string]any, len(p.stepConfs))
	for i, sc := range p.stepConfs {
		steps[i] = map[string]any{"type": sc.Type, "conf": sc.Conf}
	}
	return map[string]any{"steps": steps}
}

// Save writes each step's state into a numbered subdirectory of dir.
func (p *Pipeline) Save(dir string) error {
	for i, step := range p.steps {
		sub := p.stepDir(dir, i)
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return err
		}
		if err := step.Save(sub); err != nil {
			return fmt.Errorf("pipeline step %d (%s): %w", i, step.Type(), err)
		}
	}
	return nil
}

// Load restores each step's state from its numbered subdirectory.
func (p *Pipeline) Load(dir string) error {
	for i, step := range p.steps {
		if err := step.Load(p.stepDir(dir, i)); err != nil {
			return fmt.Errorf("pipeline step %d (%s): %w", i, step.Type(), err)
		}
	}
	p.SetFitted()
	return nil
}

func (p *Pipeline) stepDir(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("step_%d_%s", i, p.steps[i].Type()))
}
