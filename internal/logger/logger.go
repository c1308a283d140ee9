// Package logger provides structured logging for the pokedex CLI.
// It uses Go's log/slog package with optional file rotation via lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration options.
type Config struct {
	// LogDir is the directory where log files are stored.
	// If empty, only Output receives log lines.
	LogDir string

	// Debug enables debug-level logging.
	Debug bool

	// JSON enables JSON output format. If false, text format is used.
	JSON bool

	// Component is an optional component name to add to all log entries.
	Component string

	// Output is the console writer. Defaults to stderr so command output on
	// stdout stays machine-readable.
	Output io.Writer
}

// Init builds the logger, installs it as the slog default and returns it.
func Init(cfg Config) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			return nil, err
		}
		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "pokedex.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		writer = io.MultiWriter(writer, logFile)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	logger := slog.New(handler)
	if cfg.Component != "" {
		logger = logger.With("component", cfg.Component)
	}

	slog.SetDefault(logger)
	return logger, nil
}
