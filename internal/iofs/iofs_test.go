package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theskyentist/gelato/pkg/config"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 2 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gelato"),
		filepath.Join(tmpDir, ".cache", "gelato"),
		filepath.Join(tmpDir, ".local", "share", "gelato", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := touchDir(newDir)
	require.NoError(t, err)
	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	err = touchDir(newDir)
	assert.NoError(t, err)
}

func TestEnsureFiles(t *testing.T) {
	tests := []struct {
		msg     string
		ensure  func(string) error
		path    func(string) string
		content string
		custom  string
	}{
		{
			msg:     "config",
			ensure:  EnsureConfigFile,
			path:    config.ConfigFilePath,
			content: ConfigYAML,
			custom:  "# Custom config\nstore:\n  backend: none",
		},
		{
			msg:     "params",
			ensure:  EnsureParamsFile,
			path:    config.ParamsFilePath,
			content: ParamsYAML,
			custom:  "# Custom params\nemission_groups: []",
		},
	}

	for _, v := range tests {
		tmpDir := t.TempDir()
		require.NoError(t, EnsureDirs(tmpDir))

		err := v.ensure(tmpDir)
		require.NoError(t, err, v.msg)

		path := v.path(tmpDir)
		content, err := os.ReadFile(path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.content, string(content), v.msg)

		info, err := os.Stat(path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm(), v.msg)

		// existing files are not overwritten
		err = os.WriteFile(path, []byte(v.custom), 0644)
		require.NoError(t, err, v.msg)
		err = v.ensure(tmpDir)
		require.NoError(t, err, v.msg)
		content, err = os.ReadFile(path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.custom, string(content), v.msg)
	}
}

func TestEnsureFileError(t *testing.T) {
	err := EnsureConfigFile("/nonexistent/home")
	assert.Error(t, err)
}

func TestEmbedded(t *testing.T) {
	assert := assert.New(t)
	assert.Contains(ConfigYAML, "line_region")
	assert.Contains(ConfigYAML, "store:")
	assert.Contains(ConfigYAML, "log:")
	assert.Contains(ParamsYAML, "emission_groups")
	assert.Contains(ParamsYAML, "[OIII]")
	assert.Contains(ParamsYAML, "rel_strength")
}
