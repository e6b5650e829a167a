// Package config provides centralized configuration management for the
// dataset pipeline. It loads a YAML configuration file into a typed struct,
// applies documented defaults for absent keys, and validates the result on
// load to fail fast on misconfiguration.
package config

import (
	"fmt"
	"path/filepath"
)

// Config holds all pipeline configuration, populated once by Load and
// read-only afterwards.
type Config struct {
	Paths      PathsConfig
	Columns    ColumnsConfig
	Logging    LoggingConfig
	Processing ProcessingConfig

	// Processed is the dataset filename cmd/inspect loads by default
	// (key: "processed", default: "processed_pima_diabetes.csv").
	Processed string

	// ConfigPath is the path the configuration was loaded from.
	ConfigPath string

	// Root is the project root directory every relative path in the
	// configuration resolves against: the parent of the config file's
	// directory.
	Root string

	doc Document
}

// PathsConfig holds the filesystem layout. All three are absolute paths,
// already resolved against the project root; a field is empty when the
// corresponding key is absent from the configuration.
type PathsConfig struct {
	// RawData is the directory scanned for input CSV files (key: paths.raw_data)
	RawData string

	// ProcessedData is the directory standardized CSVs are written to (key: paths.processed_data)
	ProcessedData string

	// Logs is the directory log files are written to (key: paths.logs)
	Logs string
}

// ColumnsConfig describes the target schema transformation.
type ColumnsConfig struct {
	// Target is the exact ordered column schema processed tables must have (key: columns.target)
	Target []string

	// Drop lists columns removed before validation (key: columns.drop)
	Drop []string

	// Rename maps old column names to new ones (key: columns.rename)
	Rename map[string]string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (key: logging.level, default: INFO)
	Level string

	// Format is the log format: text or json (key: logging.format, default: text)
	Format string

	// ConsoleOutput enables logging to stdout (key: logging.console_output, default: true)
	ConsoleOutput bool

	// FileOutput enables logging to a timestamped file under Paths.Logs
	// (key: logging.file_output, default: true)
	FileOutput bool
}

// ProcessingConfig holds batch-run settings.
type ProcessingConfig struct {
	// OutputPrefix is prepended to every output filename (key: processing.output_prefix, default: "processed_")
	OutputPrefix string

	// SaveIndex controls whether the row index is written as the first
	// CSV column (key: processing.save_index, default: false)
	SaveIndex bool

	// PreviewRows is how many rows of each processed table are logged
	// (key: processing.show_preview_rows, default: 3)
	PreviewRows int

	// ContinueOnError decides whether a per-file failure aborts the whole
	// batch (key: processing.continue_on_error, default: true)
	ContinueOnError bool
}

// Get returns the raw configuration value at a dotted key path
// (e.g. "paths.raw_data"), or def when any path segment is missing.
func (c *Config) Get(key string, def any) any {
	return c.doc.Get(key, def)
}

// GetPath resolves the path value at key against the project root.
// Unlike Get it has no default: a missing key is an error.
func (c *Config) GetPath(key string) (string, error) {
	v := c.doc.Get(key, nil)
	if v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingPathKey, key)
	}
	rel, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMissingPathKey, key)
	}
	if filepath.IsAbs(rel) {
		return rel, nil
	}
	return filepath.Join(c.Root, rel), nil
}

// String returns a short representation of the config for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Path: %q, Root: %q, TargetColumns: %d}",
		c.ConfigPath, c.Root, len(c.Columns.Target))
}
