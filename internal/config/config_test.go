package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "pod-2", cfg.FallbackPod)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:8080", cfg.Web.Addr)
	assert.Empty(t, cfg.EPG)
	assert.Equal(t, "vlanpath", cfg.Update.Repository)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vlanpath.yaml")

	content := `
fallback_pod: pod-5
epg: VLAN100_APP
web:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, loaded, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, path, loaded)
	assert.Equal(t, "pod-5", cfg.FallbackPod)
	assert.Equal(t, "VLAN100_APP", cfg.EPG)
	assert.Equal(t, ":9090", cfg.Web.Addr)
	// Not set in the file
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("fallback_pod: [unclosed"), 0644))

	_, _, err = LoadFromPath(bad)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0644))

	t.Setenv(EnvConfigPath, path)

	cfg, loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.FallbackPod = "pod-4"
	require.NoError(t, cfg.Save(path))

	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
