package serializer_test

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kfarnes/mast/core/serializer"
	_ "github.com/kfarnes/mast/models"
	"github.com/kfarnes/mast/models/linear"
)

func trainedModel(t *testing.T) *linear.Regressor {
	t.Helper()
	r := linear.New(linear.Config{FitIntercept: true})
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{3, 5, 7})
	if err := r.Fit(x, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return r
}

func TestDumpLoad_RoundTrip(t *testing.T) {
	r := trainedModel(t)
	dir := filepath.Join(t.TempDir(), "artifacts")
	if err := serializer.Dump(r, dir); err != nil {
		t.Fatalf("dump: %v", err)
	}

	meta, err := serializer.ReadMetadata(dir)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Type != linear.TypeName || meta.ID == "" {
		t.Fatalf("unexpected metadata %+v", meta)
	}

	loaded, err := serializer.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Type() != linear.TypeName {
		t.Fatalf("expected %s, got %s", linear.TypeName, loaded.Type())
	}
	probe := mat.NewDense(2, 1, []float64{10, -4})
	want, err := r.Predict(probe)
	if err != nil {
		t.Fatalf("predict original: %v", err)
	}
	got, err := loaded.Predict(probe)
	if err != nil {
		t.Fatalf("predict loaded: %v", err)
	}
	if !mat.Equal(want, got) {
		t.Fatalf("round trip changed predictions")
	}
}

func TestLoad_MissingMetadata(t *testing.T) {
	if _, err := serializer.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing metadata")
	}
}

func TestLoad_UnknownType(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"format_version":1,"id":"x","type":"no-such-model","params":{}}`)
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := serializer.Load(dir); err == nil {
		t.Fatal("expected error for unknown model type")
	}
}

func TestReadMetadata_BadVersion(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"format_version":99,"id":"x","type":"linear","params":{}}`)
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := serializer.ReadMetadata(dir); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
