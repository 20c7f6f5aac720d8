// Package serializer persists trained models to directories and rebuilds
// them through the model registry. A serialized model is a directory holding
// a metadata manifest next to the implementation's own opaque state files.
package serializer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kfarnes/mast/core/model"
)

const (
	metadataFile  = "metadata.json"
	formatVersion = 1
)

// Metadata describes a serialized model directory.
type Metadata struct {
	FormatVersion int            `json:"format_version"`
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Params        map[string]any `json:"params"`
	SavedAt       time.Time      `json:"saved_at"`
}

// Dump writes m's metadata and trained state below dir, creating it if
// needed. The metadata records the type name and constructor parameters so
// Load can rebuild an equivalent instance without knowing the concrete type.
func Dump(m model.Model, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	meta := Metadata{
		FormatVersion: formatVersion,
		ID:            uuid.NewString(),
		Type:          m.Type(),
		Params:        m.Params(),
		SavedAt:       time.Now().UTC(),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644); err != nil {
		return err
	}
	return m.Save(dir)
}

// Load rebuilds the model stored below dir: the metadata selects the
// registered type, the params reconstruct the instance, and the
// implementation restores its own state.
func Load(dir string) (model.Model, error) {
	meta, err := ReadMetadata(dir)
	if err != nil {
		return nil, err
	}
	cfg := make(map[string]any, len(meta.Params)+1)
	for k, v := range meta.Params {
		cfg[k] = v
	}
	cfg["type"] = meta.Type
	m, err := model.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("rebuild %s from %s: %w", meta.Type, dir, err)
	}
	if err := m.Load(dir); err != nil {
		return nil, fmt.Errorf("load %s state from %s: %w", meta.Type, dir, err)
	}
	return m, nil
}

// ReadMetadata parses the manifest of a serialized model directory.
func ReadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", metadataFile, err)
	}
	if meta.FormatVersion != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", meta.FormatVersion)
	}
	if meta.Type == "" {
		return nil, fmt.Errorf("metadata in %s has no model type", dir)
	}
	return &meta, nil
}
