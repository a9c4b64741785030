package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.MonitorURL = "http://monitor.local:9000"
	cfg.CacheTTLSeconds = 45
	cfg.GoalTargets = map[string]int{"exercise": 30}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	// A minimal file with only the URL key set.
	minimal := []byte("monitor_url: http://elsewhere:1\n")
	if err := os.WriteFile(path, minimal, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MonitorURL != "http://elsewhere:1" {
		t.Fatalf("url = %q", cfg.MonitorURL)
	}
	if cfg.CacheTTL() != Default().CacheTTL() {
		t.Fatalf("ttl = %v, want default %v", cfg.CacheTTL(), Default().CacheTTL())
	}
}
