package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors distinguishing the ways configuration loading can fail.
var (
	// ErrNotFound means the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrParse means the configuration file is not valid YAML.
	ErrParse = errors.New("config parse error")

	// ErrMissingPathKey means a required path key is absent or malformed.
	ErrMissingPathKey = errors.New("path not found in config")
)

// Document is the raw nested configuration mapping as parsed from YAML.
type Document map[string]any

// Get traverses the document along a dotted key path. It returns def as
// soon as a path segment is missing or a non-mapping value is indexed
// further.
func (d Document) Get(key string, def any) any {
	var cur any = map[string]any(d)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return def
		}
	}
	return cur
}

// Load reads and validates the YAML configuration at path. An empty or
// null document yields a configuration of pure defaults rather than an
// error. The project root is the parent of the config file's directory.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	// Unmarshal into a plain map: yaml.v3 would otherwise reuse the named
	// Document type for nested mappings, which Get's map[string]any
	// assertions do not match.
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	cfg := &Config{
		ConfigPath: abs,
		Root:       filepath.Dir(filepath.Dir(abs)),
		doc:        Document(doc),
	}
	cfg.populate()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// populate fills the typed sections from the raw document, applying the
// documented default for every absent key.
func (c *Config) populate() {
	c.Paths = PathsConfig{
		RawData:       c.optionalPath("paths.raw_data"),
		ProcessedData: c.optionalPath("paths.processed_data"),
		Logs:          c.optionalPath("paths.logs"),
	}
	c.Columns = ColumnsConfig{
		Target: asStringSlice(c.doc.Get("columns.target", nil)),
		Drop:   asStringSlice(c.doc.Get("columns.drop", nil)),
		Rename: asStringMap(c.doc.Get("columns.rename", nil)),
	}
	c.Logging = LoggingConfig{
		Level:         asString(c.doc.Get("logging.level", "INFO")),
		Format:        asString(c.doc.Get("logging.format", "text")),
		ConsoleOutput: asBool(c.doc.Get("logging.console_output", true), true),
		FileOutput:    asBool(c.doc.Get("logging.file_output", true), true),
	}
	c.Processing = ProcessingConfig{
		OutputPrefix:    asString(c.doc.Get("processing.output_prefix", "processed_")),
		SaveIndex:       asBool(c.doc.Get("processing.save_index", false), false),
		PreviewRows:     asInt(c.doc.Get("processing.show_preview_rows", 3), 3),
		ContinueOnError: asBool(c.doc.Get("processing.continue_on_error", true), true),
	}
	c.Processed = asString(c.doc.Get("processed", "processed_pima_diabetes.csv"))
}

// optionalPath resolves a path key against the root, or returns "" when
// the key is absent. Callers that require the path check for "".
func (c *Config) optionalPath(key string) string {
	p, err := c.GetPath(key)
	if err != nil {
		return ""
	}
	return p
}

// Validate checks that the configuration values are well formed.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("logging.level (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("logging.format (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.Processing.PreviewRows < 0 {
		errs = append(errs, fmt.Sprintf("processing.show_preview_rows (%d) must be non-negative", c.Processing.PreviewRows))
	}
	if c.Processing.OutputPrefix == "" {
		errs = append(errs, "processing.output_prefix must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// asStringSlice converts a YAML sequence to []string, skipping entries
// that are not strings. A non-sequence value yields nil.
func asStringSlice(v any) []string {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asStringMap converts a YAML mapping to map[string]string, skipping
// entries whose value is not a string. A non-mapping value yields nil.
func asStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		if s, ok := item.(string); ok {
			out[k] = s
		}
	}
	return out
}
