// Package config loads the service configuration from YAML or JSON files
// with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kfarnes/mast/core/metrics"
)

// Config is the top-level service configuration.
type Config struct {
	// Model is the declarative model configuration: a "type" key naming a
	// registered implementation plus its constructor parameters.
	Model   map[string]any `json:"model"`
	Dataset DatasetConfig  `json:"dataset"`
	Output  OutputConfig   `json:"output"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
}

// DatasetConfig locates the training data.
type DatasetConfig struct {
	// Path is the CSV file holding features and targets.
	Path string `json:"path"`
	// Targets names the columns to predict; every other column is a feature.
	Targets []string `json:"targets"`
}

// Validate checks mandatory fields.
func (c DatasetConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	return nil
}

// OutputConfig controls where trained models are written.
type OutputConfig struct {
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "artifacts"
	}
}

// Load reads the configuration at path. Environment variables prefixed with
// MAST_ override file values, with "__" separating nested keys.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("MAST_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mast_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Output.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
