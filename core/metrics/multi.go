package metrics

// MultiSink fans out every event to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFit forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordFit(ev FitEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordFit(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrediction forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			return err
		}
	}
	return nil
}
