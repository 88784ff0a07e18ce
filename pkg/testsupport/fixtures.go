package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-compositor/pkg/schema"
)

// LoadStore reads table definitions from a directory of YAML/JSON fixtures.
func LoadStore(t *testing.T, dir string) *schema.Store {
	t.Helper()

	store, err := schema.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	return store
}

// MustTable returns a table from store or fails the test.
func MustTable(t *testing.T, store *schema.Store, name string) schema.Table {
	t.Helper()

	table, ok := store.Table(name)
	if !ok {
		t.Fatalf("table %q not defined (have %v)", name, store.Names())
	}
	return table
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
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

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
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

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	if diff := CompareGolden(MustReadGoldenString(t, path), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
