package model

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestTrainingError(t *testing.T) {
	err := NewTrainingErrorf("linear", "want %d columns, got %d", 3, 2)
	if !errors.Is(err, ErrTraining) {
		t.Fatalf("expected ErrTraining match")
	}
	var te *TrainingError
	if !errors.As(err, &te) || te.Model != "linear" {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(err.Error(), "linear") {
		t.Fatalf("message %q missing model type", err)
	}
}

func TestInferenceError_WrapsCause(t *testing.T) {
	err := NewInferenceError("knn", ErrNotFitted)
	if !errors.Is(err, ErrInference) {
		t.Fatalf("expected ErrInference match")
	}
	if !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted to unwrap")
	}
	wrapped := NewInferenceError("knn", io.ErrUnexpectedEOF)
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) {
		t.Fatalf("expected cause to unwrap")
	}
}

func TestState(t *testing.T) {
	var s State
	if s.IsFitted() {
		t.Fatal("zero value must be unfitted")
	}
	s.SetFitted()
	if !s.IsFitted() {
		t.Fatal("expected fitted")
	}
	s.Reset()
	if s.IsFitted() {
		t.Fatal("expected reset")
	}
}
