package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencurator/contentgate/internal/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
limits:
  max_content_bytes: 1024
  max_metadata_bytes: 256
  max_line_length: 80
  min_body_length: 10
  strict_version: true
batch_concurrency: 2
audit_log: /tmp/audit.jsonl
pattern_packs:
  - ./packs
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Limits.MaxContentBytes)
	assert.Equal(t, 256, cfg.Limits.MaxMetadataBytes)
	assert.Equal(t, 80, cfg.Limits.MaxLineLength)
	assert.Equal(t, 10, cfg.Limits.MinBodyLength)
	assert.True(t, cfg.Limits.StrictVersion)
	assert.Equal(t, 2, cfg.BatchConcurrency)
	assert.Equal(t, "/tmp/audit.jsonl", cfg.AuditLog)
	assert.Equal(t, []string{"./packs"}, cfg.PatternPacks)
}

func TestLoad_PartialConfigKeepsDefaultLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
limits:
  max_line_length: 120
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, 120, cfg.Limits.MaxLineLength)
	assert.Equal(t, def.Limits.MaxContentBytes, cfg.Limits.MaxContentBytes)
	assert.Equal(t, def.Limits.MinBodyLength, cfg.Limits.MinBodyLength)
	assert.Equal(t, def.BatchConcurrency, cfg.BatchConcurrency)
}

func TestLoad_NegativeLimitFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
limits:
  min_body_length: -5
batch_concurrency: 0
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Limits.MinBodyLength, cfg.Limits.MinBodyLength)
	assert.Equal(t, config.Default().BatchConcurrency, cfg.BatchConcurrency)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits: ["), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
