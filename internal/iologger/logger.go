// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/theskyentist/gelato/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gelato.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file", the file is
// rewritten on every start.
func Init(logDir string, cfg config.LogConfig) error {
	w, err := writer(logDir, cfg.Destination)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func writer(logDir, destination string) (io.Writer, error) {
	switch destination {
	case "stdout":
		return os.Stdout, nil
	case "file":
		path := filepath.Join(logDir, LogFile)
		f, err := os.Create(path)
		if err != nil {
			return nil, CreateLogFileError(path, err)
		}
		return f, nil
	default:
		return os.Stderr, nil
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
