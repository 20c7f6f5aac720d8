package factory

import (
	"errors"
	"strings"
	"testing"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 3 {
		t.Fatalf("expected 3 got %d", inst.A)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil })
	if !errors.Is(err, ErrDuplicateType) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := reg.Register("nil", nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
	_, err = reg.Create(ModuleConfig{Type: "y"})
	var ute *UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType match")
	}
}

// The unknown-type message must list every registered name.
func TestRegistry_UnknownTypeListsKnown(t *testing.T) {
	reg := NewRegistry[int]()
	for _, name := range []string{"beta", "alpha"} {
		if err := reg.Register(name, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	_, err := reg.Create(ModuleConfig{Type: "gamma"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, name := range []string{"alpha", "beta"} {
		if !strings.Contains(msg, name) {
			t.Fatalf("message %q missing registered type %s", msg, name)
		}
	}
}

func TestRegistry_Known(t *testing.T) {
	reg := NewRegistry[int]()
	if got := reg.Known(); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
	for _, name := range []string{"c", "a", "b"} {
		if err := reg.Register(name, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	got := reg.Known()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted %v got %v", want, got)
		}
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := NewRegistry[int]()
	reg.MustRegister("x", func(map[string]any) (int, error) { return 0, nil })
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate MustRegister")
		}
	}()
	reg.MustRegister("x", func(map[string]any) (int, error) { return 0, nil })
}
