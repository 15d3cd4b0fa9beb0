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

	assert.Equal(t, "base", cfg.Defaults.Model)
	assert.Equal(t, "simple", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.UseCache)
	assert.Equal(t, "en", cfg.Translate.TargetLanguage)
}

func TestConfig_SaveLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Model = "large"
	cfg.Defaults.Format = "timestamps"
	require.NoError(t, cfg.Save(configPath))

	loaded, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "large", loaded.Defaults.Model)
	assert.Equal(t, "timestamps", loaded.Defaults.Format)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.Defaults.Model)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRANSCREVA_MODEL", "small")
	t.Setenv("TRANSCREVA_TARGET_LANGUAGE", "pt")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "small", cfg.Defaults.Model)
	assert.Equal(t, "pt", cfg.Translate.TargetLanguage)
}

func TestLoad_InvalidLanguage(t *testing.T) {
	t.Setenv("TRANSCREVA_LANGUAGE", "not a language")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateLanguage(t *testing.T) {
	assert.NoError(t, ValidateLanguage(""))
	assert.NoError(t, ValidateLanguage("pt"))
	assert.NoError(t, ValidateLanguage("en-US"))
	assert.Error(t, ValidateLanguage("zz!"))
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	require.NotEmpty(t, dir)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".transcreva"), dir)
}
