package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Packages["ubuntu"])
	assert.Equal(t, 4, cfg.Deskflow.MaxAttempts)
}

func TestLoadConfigOverridesAndFills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log_level: debug
packages:
  arch: [git, neovim]
deskflow:
  repo_url: https://example.com/deskflow-fork
  max_attempts: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"git", "neovim"}, cfg.Packages["arch"])
	assert.Equal(t, "https://example.com/deskflow-fork", cfg.Deskflow.RepoURL)
	assert.Equal(t, 2, cfg.Deskflow.MaxAttempts)
	// Unset sections still get defaults.
	assert.Equal(t, "deps.yml", cfg.Deskflow.ConfigFile)
	assert.NotEmpty(t, cfg.Themes)
	assert.NotEmpty(t, cfg.Apps)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: [::"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDeskflowBackoff(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "2s", cfg.Deskflow.Backoff().String())
}
