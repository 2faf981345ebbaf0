// Package testsupport holds fixture and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schemafile"
)

// MustLoadSchema reads a schemafile fixture.
func MustLoadSchema(t *testing.T, path string) *model.Schema {
	t.Helper()

	schema, err := schemafile.LoadFile(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return schema
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

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// AssertGolden compares got with the golden file at path, ignoring one
// trailing newline in the file. With UPDATE_GOLDENS set the file is
// rewritten instead.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got+"\n")) {
		return
	}
	want := strings.TrimSuffix(string(MustReadGolden(t, path)), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// AssertGoldenJSON encodes value with indentation and compares it with the
// golden file at path.
func AssertGoldenJSON(t *testing.T, path string, value any) {
	t.Helper()
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	AssertGolden(t, path, string(payload))
}
