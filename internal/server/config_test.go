package server_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/internal/server"
)

func TestDefaultConfig(t *testing.T) {
	cfg := server.DefaultConfig()

	if _, err := uuid.Parse(cfg.Marker.Value); err != nil {
		t.Fatalf("expected generated uuid marker, got %q: %v", cfg.Marker.Value, err)
	}
	cfg.Marker.Value = ""
	want := server.Config{
		Addr:           ":8080",
		Title:          "This is a dummy form",
		SubmitLabel:    "Save Changes",
		SuccessMessage: "It all worked",
		HiddenValues:   map[string]string{"id": "@new@"},
		Marker:         server.MarkerConfig{Name: "submit-hidden"},
		MetricsPrefix:  "formkit",
		LogLevel:       "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigExpandsEnvironment(t *testing.T) {
	t.Setenv("FORMKIT_TEST_MARKER", "beans")
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "addr: 127.0.0.1:9000\nschema_path: forms/product.yaml\nmarker:\n  value: ${FORMKIT_TEST_MARKER}\nhidden_values:\n  id: \"7\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := server.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.Marker.Value != "beans" || cfg.Marker.Name != "submit-hidden" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff(map[string]string{"id": "7"}, cfg.HiddenValues); diff != "" {
		t.Fatalf("hidden values mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string]string{
		"watch without path": "watch_schema: true\n",
		"padded marker":      "marker:\n  name: ' x '\n",
		"bad yaml":           "addr: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := server.ParseConfig([]byte(doc))
			if err == nil || !strings.HasPrefix(err.Error(), "server: ") {
				t.Fatalf("expected prefixed error, got %v", err)
			}
		})
	}

	if _, err := server.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
