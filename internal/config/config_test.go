package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultPathUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), true)
	require.Error(t, err)
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paperscout.toml")
	content := `
base_url = "https://example.com/papers"
delay_sec = 5
models = ["model-a", "model-b"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/papers", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Delay())
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.Models)

	// Untouched keys keep their defaults.
	assert.Equal(t, Default().PapersDir, cfg.PapersDir)
	assert.Equal(t, Default().TrackerFile, cfg.TrackerFile)
}

func TestLoad_MalformedTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paperscout.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = [unclosed"), 0o644))

	_, err := Load(path, true)
	require.Error(t, err)
}

func TestDefaultTimeouts(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30*time.Second, cfg.PageTimeout())
	assert.Equal(t, 60*time.Second, cfg.DownloadTimeout())
	assert.Equal(t, 2*time.Second, cfg.Delay())
}
