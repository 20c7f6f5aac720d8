package model

import "gonum.org/v1/gonum/mat"

// Model is the capability set calling code may rely on for any registered
// model type. Fit mutates the receiver in place; Predict is only valid once
// a Fit (or Load of a trained state) has succeeded.
type Model interface {
	// Fit trains the model on the feature matrix x and target matrix y.
	// Transformers ignore y. Incompatible shapes yield a TrainingError.
	Fit(x, y mat.Matrix) error

	// Predict returns predictions (or the transformed output) for x.
	// Calling Predict before Fit yields an InferenceError wrapping
	// ErrNotFitted.
	Predict(x mat.Matrix) (mat.Matrix, error)

	// Save writes the trained state below dir. Load restores it. A model
	// saved then loaded must produce identical predictions for identical
	// inputs.
	Save(dir string) error
	Load(dir string) error

	// Type returns the registered type name of the implementation.
	Type() string

	// Params returns the constructor parameters the instance was built
	// with, keyed the way the configuration spells them.
	Params() map[string]any
}

// State tracks whether an estimator has been fitted. Implementations embed
// it and flag it from Fit and Load. The field is exported so gob snapshots
// carry it.
type State struct {
	Trained bool
}

// IsFitted reports whether the estimator holds a trained state.
func (s *State) IsFitted() bool { return s.Trained }

// SetFitted marks the estimator as trained.
func (s *State) SetFitted() { s.Trained = true }

// Reset returns the estimator to its untrained state.
func (s *State) Reset() { s.Trained = false }
