// Package config loads engine configuration. All numeric thresholds the
// analysis components consult are supplied from here, never hard-coded in
// component logic. A missing config file yields the compiled-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "contentgate.yaml"

// Limits are the externally supplied thresholds consumed by the analysis
// components.
type Limits struct {
	// MaxContentBytes rejects whole files above this size (critical).
	MaxContentBytes int `yaml:"max_content_bytes"`
	// MaxMetadataBytes flags serialized front-matter above this size (medium).
	MaxMetadataBytes int `yaml:"max_metadata_bytes"`
	// MaxLineLength flags individual body lines above this length (low).
	MaxLineLength int `yaml:"max_line_length"`
	// MinBodyLength flags bodies below this length (medium).
	MinBodyLength int `yaml:"min_body_length"`
	// StrictVersion upgrades non-semver version strings from a low advisory
	// to a high-severity schema violation.
	StrictVersion bool `yaml:"strict_version"`
}

// Config is the full engine configuration.
type Config struct {
	Limits Limits `yaml:"limits"`

	// BatchConcurrency bounds the batch coordinator's worker pool.
	BatchConcurrency int `yaml:"batch_concurrency"`

	// AuditLog is the JSONL audit trail path. Empty disables auditing.
	AuditLog string `yaml:"audit_log"`

	// PatternPacks lists directories of extra YAML pattern packs merged into
	// the registry at startup.
	PatternPacks []string `yaml:"pattern_packs"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Limits: Limits{
			MaxContentBytes:  262144, // 256 KiB
			MaxMetadataBytes: 4096,
			MaxLineLength:    500,
			MinBodyLength:    100,
		},
		BatchConcurrency: 8,
	}
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults apply. Zero-valued limits in the file fall back to defaults so a
// partial config cannot silently disable a guard.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	def := Default()
	if cfg.Limits.MaxContentBytes <= 0 {
		cfg.Limits.MaxContentBytes = def.Limits.MaxContentBytes
	}
	if cfg.Limits.MaxMetadataBytes <= 0 {
		cfg.Limits.MaxMetadataBytes = def.Limits.MaxMetadataBytes
	}
	if cfg.Limits.MaxLineLength <= 0 {
		cfg.Limits.MaxLineLength = def.Limits.MaxLineLength
	}
	if cfg.Limits.MinBodyLength <= 0 {
		cfg.Limits.MinBodyLength = def.Limits.MinBodyLength
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = def.BatchConcurrency
	}

	return cfg, nil
}
