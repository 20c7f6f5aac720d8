package metrics

import "time"

// FitEvent captures one training run of a model.
type FitEvent struct {
	ModelType string
	Rows      int
	Features  int
	Duration  time.Duration
	Error     string
	Time      time.Time
}

// PredictionEvent captures one inference run. Outputs carries the produced
// rows for sinks that forward predictions; sinks that only count may ignore
// it.
type PredictionEvent struct {
	ModelType string
	Rows      int
	Duration  time.Duration
	Outputs   [][]float64
	Columns   []string
	Time      time.Time
}

// Sink records model lifecycle events.
type Sink interface {
	RecordFit(ev FitEvent) error
	RecordPrediction(ev PredictionEvent) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordFit(FitEvent) error               { return nil }
func (NopSink) RecordPrediction(PredictionEvent) error { return nil }
