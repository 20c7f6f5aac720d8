package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrMissingType is returned when a configuration has no "type" key.
	ErrMissingType = errors.New("configuration missing \"type\" key")

	// ErrNotFitted is wrapped by InferenceError when Predict runs before Fit.
	ErrNotFitted = errors.New("model is not fitted")

	// ErrTraining is matched by TrainingError.
	ErrTraining = errors.New("training failed")

	// ErrInference is matched by InferenceError.
	ErrInference = errors.New("inference failed")
)

// TrainingError reports a Fit failure for a given model type.
type TrainingError struct {
	Model string
	Err   error
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("%s: training failed: %v", e.Model, e.Err)
}

func (e *TrainingError) Unwrap() error { return e.Err }

func (e *TrainingError) Is(target error) bool { return target == ErrTraining }

// InferenceError reports a Predict failure for a given model type.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: inference failed: %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) Is(target error) bool { return target == ErrInference }

// NewTrainingError wraps err as a TrainingError for the named model type.
func NewTrainingError(model string, err error) error {
	return &TrainingError{Model: model, Err: err}
}

// NewTrainingErrorf builds a TrainingError from a format string.
func NewTrainingErrorf(model, format string, args ...any) error {
	return &TrainingError{Model: model, Err: fmt.Errorf(format, args...)}
}

// NewInferenceError wraps err as an InferenceError for the named model type.
func NewInferenceError(model string, err error) error {
	return &InferenceError{Model: model, Err: err}
}

// NewInferenceErrorf builds an InferenceError from a format string.
func NewInferenceErrorf(model, format string, args ...any) error {
	return &InferenceError{Model: model, Err: fmt.Errorf(format, args...)}
}
