package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "x", cfg.Dataset.LonColumn)
	assert.Equal(t, "y", cfg.Dataset.LatColumn)
	assert.Equal(t, "ZCOORD", cfg.Dataset.ElevColumn)
	assert.Equal(t, "ID", cfg.Dataset.IDColumn)
	assert.Equal(t, "https://api-inference.huggingface.co", cfg.HF.BaseURL)
	assert.Equal(t, "smp111/terrain_recognition", cfg.HF.Model)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(2048), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
dataset:
  lon_column: LON
  lat_column: LAT
  sheet: Section B
log:
  level: debug
  format: console
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "LON", cfg.Dataset.LonColumn)
	assert.Equal(t, "LAT", cfg.Dataset.LatColumn)
	assert.Equal(t, "Section B", cfg.Dataset.Sheet)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "ZCOORD", cfg.Dataset.ElevColumn)
}

func TestLoadEnvOverrides(t *testing.T) {
	chTempDir(t)

	t.Setenv("WHEELSYNC_HF_KEY", "hf-secret")
	t.Setenv("WHEELSYNC_DATASET_ID_COLUMN", "OBJECTID")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hf-secret", cfg.HF.Key)
	assert.Equal(t, "OBJECTID", cfg.Dataset.IDColumn)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate("hf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hf.key")

	err = cfg.Validate("anthropic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key")

	err = cfg.Validate("synth")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system_prompt")

	cfg.HF.Key = "k"
	cfg.Anthropic.Key = "k"
	cfg.Synth.SystemPrompt = "p"
	require.NoError(t, cfg.Validate("hf", "anthropic", "synth"))
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.Error(t, InitLogger(LogConfig{Level: "bogus", Format: "json"}))
}
