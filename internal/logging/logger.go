// Package logging builds structured loggers using log/slog.
//
// A logger is constructed once per run from configuration and passed
// explicitly into every operation that needs it; nothing in this package
// touches the process-global default logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datastd/internal/config"
)

// Logger bundles a configured slog.Logger with the resources behind it.
type Logger struct {
	*slog.Logger

	// FilePath is the log file written to, or "" when file output is off.
	FilePath string

	file *os.File
}

// Close releases the log file, if any. Safe to call on console-only loggers.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// New builds a logger from config. With file output enabled it creates
// logDir and a timestamped processing_<YYYYMMDD_HHMMSS>.log inside it;
// with console output enabled it also writes to stdout. Level values:
// "debug", "info", "warn", "error" (case-insensitive, default info).
// Format values: "text" or "json".
func New(cfg config.LoggingConfig, logDir string) (*Logger, error) {
	var writers []io.Writer
	out := &Logger{}

	if cfg.ConsoleOutput {
		writers = append(writers, os.Stdout)
	}
	if cfg.FileOutput {
		if logDir == "" {
			return nil, fmt.Errorf("file output enabled but no log directory configured")
		}
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %s: %w", logDir, err)
		}
		name := fmt.Sprintf("processing_%s.log", time.Now().Format("20060102_150405"))
		f, err := os.Create(filepath.Join(logDir, name))
		if err != nil {
			return nil, fmt.Errorf("creating log file: %w", err)
		}
		out.file = f
		out.FilePath = f.Name()
		writers = append(writers, f)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	out.Logger = slog.New(handler)
	return out, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
