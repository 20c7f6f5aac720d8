package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	data := `model:
  type: "linear"
  fit_intercept: true
  l2: 0.5
dataset:
  path: "train.csv"
  targets: ["y"]
output:
  dir: "out"
metrics:
  sinks:
    - type: "nop"
logging:
  level: "debug"
`
	cfg, err := Load(writeConfig(t, "config.yaml", data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"model.type", cfg.Model["type"], "linear"},
		{"model.fit_intercept", cfg.Model["fit_intercept"], true},
		{"dataset.path", cfg.Dataset.Path, "train.csv"},
		{"dataset.targets", len(cfg.Dataset.Targets) == 1 && cfg.Dataset.Targets[0] == "y", true},
		{"output.dir", cfg.Output.Dir, "out"},
		{"metrics.sinks", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"logging.level", cfg.Logging.Level, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_JSON(t *testing.T) {
	data := `{"model":{"type":"knn","k":3},"dataset":{"path":"d.csv"}}`
	cfg, err := Load(writeConfig(t, "config.json", data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Model["type"] != "knn" {
		t.Fatalf("unexpected model %v", cfg.Model)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", `model: {type: "linear"}`))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Output.Dir != "artifacts" {
		t.Fatalf("expected default output dir, got %s", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MAST_LOGGING__LEVEL", "warn")
	t.Setenv("MAST_OUTPUT__DIR", "/tmp/override")
	data := `model: {type: "linear"}
logging: {level: "debug"}
output: {dir: "out"}
`
	cfg, err := Load(writeConfig(t, "config.yaml", data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env override warn, got %s", cfg.Logging.Level)
	}
	if cfg.Output.Dir != "/tmp/override" {
		t.Fatalf("expected env override dir, got %s", cfg.Output.Dir)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.toml", "x = 1")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := Load(writeConfig(t, "config.yaml", `logging: {level: "chatty"}`)); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestDatasetConfig_Validate(t *testing.T) {
	if err := (DatasetConfig{}).Validate(); err == nil {
		t.Fatal("expected error for missing path")
	}
	if err := (DatasetConfig{Path: "d.csv"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
