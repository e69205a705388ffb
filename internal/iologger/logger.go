// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/kardex/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "kardex.log"

// Init initializes the global slog logger with the given configuration.
// With the "file" destination the log file in logDir is recreated on
// every start.
func Init(logDir string, cfg config.LogConfig) error {
	writer, err := output(logDir, cfg.Destination)
	if err != nil {
		return err
	}
	slog.SetDefault(New(writer, cfg))
	return nil
}

// New creates a logger that writes to w with the configured level and format.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	case "tint":
		// TODO: colored output with github.com/lmittmann/tint
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

func output(logDir, destination string) (io.Writer, error) {
	switch destination {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.Create(logPath)
		if err != nil {
			return nil, LogFileError(logPath, err)
		}
		return file, nil
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
