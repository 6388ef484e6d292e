package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveYAMLConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	settings := validSettings()
	settings.WebServer.Port = "9090"
	settings.Output.Logs = "var/logs/"
	settings.Version = "1.2.3" // excluded from persistence

	require.NoError(t, SaveYAMLConfig(configPath, settings))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	loaded := &Settings{}
	require.NoError(t, yaml.Unmarshal(data, loaded))

	assert.Equal(t, "9090", loaded.WebServer.Port)
	assert.Equal(t, "var/logs/", loaded.Output.Logs)
	assert.Equal(t, settings.Output.SQLite, loaded.Output.SQLite)
	assert.Equal(t, settings.RiceNET, loaded.RiceNET)
	assert.Empty(t, loaded.Version)

	// No stray temp files left next to the config.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveYAMLConfigMissingDir(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "nope", "config.yaml")
	err := SaveYAMLConfig(configPath, validSettings())
	assert.Error(t, err)
}
