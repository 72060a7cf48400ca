// Package config loads the optional dupecull YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dendrascience/dupecull/internal/dupe"
	"github.com/dendrascience/dupecull/internal/logging"
)

// Config holds everything a scan can be configured with. Flags set
// explicitly on the command line take precedence over file values.
type Config struct {
	Workers     int            `yaml:"workers"`      // 0 = auto-detect
	Algorithm   string         `yaml:"algorithm"`    // xxh64, md5, sha256
	Exclude     []string       `yaml:"exclude"`      // base-name globs skipped during traversal
	HistoryPath string         `yaml:"history_path"` // SQLite deletion history; empty disables
	MetricsAddr string         `yaml:"metrics_addr"` // Prometheus listen address; empty disables
	Log         logging.Config `yaml:"log"`
}

var (
	errNegativeWorkers = errors.New("workers cannot be negative")
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", errNegativeWorkers, c.Workers)
	}
	if _, err := dupe.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = string(dupe.XXH64)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}
