package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9000
  timeout: 5s
log:
  level: debug
model:
  path: models/ensemble.json
  watch: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Http.Port)
	assert.Equal(t, 5*time.Second, cfg.Http.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Model.Watch)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "models/ensemble.json"), cfg.Model.Path)
	assert.Equal(t, 1024, cfg.Cache.Size)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "http:\n  port: 70000\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateNamesSettings(t *testing.T) {
	cfg := Default()
	cfg.Http.Timeout = 0
	cfg.Cache.Size = -1
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http.timeout")
	assert.Contains(t, err.Error(), "cache.size")
	assert.Contains(t, err.Error(), "log.format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
