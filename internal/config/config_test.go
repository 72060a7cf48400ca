package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dendrascience/dupecull/internal/dupe"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
workers: 8
algorithm: sha256
exclude:
  - "*.log"
  - ".git"
history_path: /var/lib/dupecull/history.db
metrics_addr: ":9090"
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Algorithm != "sha256" {
		t.Errorf("Algorithm = %q, want sha256", cfg.Algorithm)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"*.log", ".git"}) {
		t.Errorf("Exclude = %v, want [*.log .git]", cfg.Exclude)
	}
	if cfg.HistoryPath != "/var/lib/dupecull/history.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `workers: 2`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Algorithm != string(dupe.XXH64) {
		t.Errorf("Algorithm default = %q, want %q", cfg.Algorithm, dupe.XXH64)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level default = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("Log.Format default = %q, want console", cfg.Log.Format)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 0 || cfg.Algorithm != string(dupe.XXH64) {
		t.Errorf("Load(empty) = %+v, want defaults", cfg)
	}
}

func TestLoadRejectsNegativeWorkers(t *testing.T) {
	path := writeConfig(t, `workers: -1`)

	if _, err := Load(path); !errors.Is(err, errNegativeWorkers) {
		t.Errorf("Load() error = %v, want errNegativeWorkers", err)
	}
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	path := writeConfig(t, `algorithm: crc32`)

	if _, err := Load(path); !errors.Is(err, dupe.ErrUnknownAlgorithm) {
		t.Errorf("Load() error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `worker_count: 4`)

	if _, err := Load(path); err == nil {
		t.Errorf("Load() with unknown field expected an error, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Load(absent) expected an error, got nil")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Algorithm != string(dupe.XXH64) {
		t.Errorf("Default() algorithm = %q, want %q", cfg.Algorithm, dupe.XXH64)
	}
	if cfg.Workers != 0 {
		t.Errorf("Default() workers = %d, want 0 (auto)", cfg.Workers)
	}
}
