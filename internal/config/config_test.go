package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "creative-launch-tracker", cfg.AppName)
	assert.Equal(t, PolicyConvert, cfg.LegacyPolicy)
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	body := "app_name = \"demo\"\nlog_level = \"debug\"\nlegacy_policy = \"reset\"\nexports_output = \"~/out\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.AppName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, PolicyReset, cfg.LegacyPolicy)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "out"), cfg.ExportsOutput)

	t.Setenv("LAUNCHTRACKER_APP_NAME", "from-env")
	t.Setenv("LAUNCHTRACKER_LEGACY_POLICY", "bogus")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AppName)
	assert.Equal(t, PolicyConvert, cfg.LegacyPolicy, "unknown policy falls back to convert")
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("app_name = "), 0644))

	_, err := Load()
	assert.Error(t, err)
}
