package iologger

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theskyentist/gelato/pkg/config"
	"github.com/theskyentist/gelato/pkg/errcode"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.want, parseLevel(v.in), v.in)
	}
}

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "debug", Destination: "file"}
	err := Init(dir, cfg)
	require.NoError(t, err)
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	slog.Debug("model built", "parameters", 42)
	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"parameters":42`)
}

func TestInitFileError(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init("/nonexistent/gelato/logs", cfg)
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Contains(t, gnErr.Vars[0], LogFile)
}
