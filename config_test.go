package imageredux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 75, cfg.Quality)
	assert.Equal(t, 50, cfg.SizePercent)
	assert.Equal(t, "reduced", cfg.OutputFolder)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.InDelta(t, 0.5, cfg.SizeFactor(), 1e-9)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("quality: 40\nsize_percent: 25\noutput_folder: tiny\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Quality)
	assert.Equal(t, 25, cfg.SizePercent)
	assert.Equal(t, "tiny", cfg.OutputFolder)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.25, cfg.SizeFactor(), 1e-9)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("IMAGEREDUX_QUALITY", "90")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Quality)
}

func TestConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("size_percent: 101\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestConfigEmptyFolderFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_folder: \"\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "reduced", cfg.OutputFolder)
}
