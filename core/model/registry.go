package model

import (
	"fmt"

	"github.com/kfarnes/mast/core/factory"
)

// DefaultRegistry is the process-wide model registry. Builtin types register
// themselves in init() of the models package; the registration phase is
// expected to complete before the first FromConfig call.
var DefaultRegistry = factory.NewRegistry[Model]()

// Register adds a model factory for the given type name to the default
// registry. Duplicate names error.
func Register(name string, f factory.Factory[Model]) error {
	return DefaultRegistry.Register(name, f)
}

// MustRegister registers a model factory and panics on collision. Intended
// for init() blocks.
func MustRegister(name string, f factory.Factory[Model]) {
	DefaultRegistry.MustRegister(name, f)
}

// Known returns the sorted type names registered in the default registry.
func Known() []string {
	return DefaultRegistry.Known()
}

// FromConfig builds a model from a flat configuration mapping. The "type"
// key selects the registered implementation; every other key is forwarded to
// its factory as a constructor parameter. The input map is not modified.
func FromConfig(cfg map[string]any) (Model, error) {
	return Build(DefaultRegistry, cfg)
}

// Build is FromConfig against an explicit registry, for callers that prefer
// scoped registries over process-wide state.
func Build(reg *factory.Registry[Model], cfg map[string]any) (Model, error) {
	raw, ok := cfg["type"]
	if !ok {
		return nil, ErrMissingType
	}
	name, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: \"type\" must be a string, got %T", ErrMissingType, raw)
	}
	conf := make(map[string]any, len(cfg)-1)
	for k, v := range cfg {
		if k != "type" {
			conf[k] = v
		}
	}
	return reg.Create(factory.ModuleConfig{Type: name, Conf: conf})
}
