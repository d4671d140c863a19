package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bitmaps", cfg.Source.Dir)
	assert.Equal(t, []string{"bmp"}, cfg.Source.Extensions)
	assert.Equal(t, "indexDump.json", cfg.Output.DumpFile)
	assert.Equal(t, "index_", cfg.Output.PagePrefix)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indexer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  dir: /srv/displays
  extensions: [bmp, png]
output:
  dir: out
log:
  level: debug
redis:
  enabled: true
  port: 6380
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/displays", cfg.Source.Dir)
	assert.Equal(t, []string{"bmp", "png"}, cfg.Source.Extensions)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OUTPUT_DUMP_FILE", "dump.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dump.json", cfg.Output.DumpFile)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
