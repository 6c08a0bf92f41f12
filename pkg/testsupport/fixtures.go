// Package testsupport holds fixture and golden file helpers shared by tests.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelkit/pkg/loader"
	"github.com/goliatone/go-modelkit/pkg/openapi"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

// LoadCatalog loads a definition fixture, failing the test on error.
func LoadCatalog(t *testing.T, path string, options ...loader.Option) *loader.Catalog {
	t.Helper()

	catalog, err := loader.LoadFile(path, options...)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// MustSchema returns a schema of the catalog, failing the test when absent.
func MustSchema(t *testing.T, catalog *loader.Catalog, name string) *schema.Schema {
	t.Helper()

	s, ok := catalog.Schema(name)
	if !ok {
		t.Fatalf("schema %q not found in catalog (have %v)", name, catalog.Names())
	}
	return s
}

// MustImportOpenAPI imports the component schemas of an OpenAPI fixture.
func MustImportOpenAPI(t *testing.T, path string, options ...openapi.Option) map[string]*schema.Schema {
	t.Helper()

	schemas, err := openapi.ImportFile(Context(), path, options...)
	if err != nil {
		t.Fatalf("import openapi: %v", err)
	}
	return schemas
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertJSONGolden compares got with the JSON golden at path, ignoring key
// order and whitespace.
func AssertJSONGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}

	var want, have any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	if err := json.Unmarshal(got, &have); err != nil {
		t.Fatalf("decode output: %v\n%s", err, got)
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
