package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umilog/umiseed/pkg/config"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))

	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), "%s should be a directory", dir)
	}

	// Idempotent.
	assert.NoError(t, EnsureDirs(home))
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	require.NoError(t, EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(bs))
}

func TestEnsureConfigFile_KeepsExisting(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))

	path := config.ConfigFilePath(home)
	custom := "paths:\n  data_dir: /custom\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, EnsureConfigFile(home))
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(bs),
		"Existing config file should not be overwritten")
}

// TestConfigYAML_MatchesDefaults keeps the embedded config file honest:
// its values must round-trip to the built-in defaults, so a fresh install
// behaves the same with or without the file.
func TestConfigYAML_MatchesDefaults(t *testing.T) {
	var fromFile config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &fromFile))

	def := config.New()
	assert.Equal(t, def.Paths, fromFile.Paths)
	assert.Equal(t, def.Build, fromFile.Build)
	assert.Equal(t, def.Fetch, fromFile.Fetch)
	assert.Equal(t, def.Upload, fromFile.Upload)
	assert.Equal(t, def.Log, fromFile.Log)
}

func TestEnsureDirs_Error(t *testing.T) {
	home := t.TempDir()
	// A file standing where a directory must go.
	blocker := filepath.Join(home, ".config")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := EnsureDirs(home)
	assert.Error(t, err)
}
