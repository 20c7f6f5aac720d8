package metrics_test

import (
	"testing"

	"github.com/kfarnes/mast/core/factory"
	metrics "github.com/kfarnes/mast/core/metrics"
	_ "github.com/kfarnes/mast/infra/metrics"
)

// Builtin sinks register via infra/metrics at load time.
func TestNewSink_Builtins(t *testing.T) {
	s, err := metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("create nop: %v", err)
	}
	if s == nil {
		t.Fatal("expected sink instance")
	}
	if _, err := metrics.NewSink([]factory.ModuleConfig{{Type: "missing"}}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestNewSink_Counts(t *testing.T) {
	s, err := metrics.NewSink(nil)
	if err != nil {
		t.Fatalf("create empty: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink for empty config, got %T", s)
	}

	s, err = metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	multi, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(multi.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(multi.Sinks))
	}
}
