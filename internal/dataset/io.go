package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sentinel errors distinguishing the ways CSV input can fail. Each is
// wrapped together with the offending path.
var (
	// ErrFileNotFound means the CSV file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrEmptyData means the file contains no parseable rows at all,
	// not even a header.
	ErrEmptyData = errors.New("file is empty")

	// ErrParse means the file content is not well-formed CSV.
	ErrParse = errors.New("csv parse error")

	// ErrDirectoryNotFound means the directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrNotADirectory means the path exists but is a file.
	ErrNotADirectory = errors.New("path is not a directory")
)

// ReadCSV reads a single CSV file into a Table. The first record is the
// header; a header-only file yields a valid zero-row table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}

	header := records[0]
	// Excel and some exporters prepend a UTF-8 BOM to the first cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t, err := New(header, records[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return t, nil
}

// checkDir verifies that dir exists and is a directory.
func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	return nil
}

// ReadNamed reads the named CSV file from dir.
func ReadNamed(filename, dir string) (*Table, error) {
	if err := checkDir(dir); err != nil {
		return nil, err
	}
	return ReadCSV(filepath.Join(dir, filename))
}

// ListCSVFiles returns the names of the .csv entries in dir in
// lexicographic order (the order os.ReadDir guarantees), making every
// directory-level operation deterministic.
func ListCSVFiles(dir string) ([]string, error) {
	if err := checkDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ReadFirstInDir reads the lexicographically first .csv file in dir.
// A directory without any .csv entry yields (nil, nil), not an error.
func ReadFirstInDir(dir string) (*Table, error) {
	names, err := ListCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return ReadCSV(filepath.Join(dir, names[0]))
}

// ReadAllInDir reads every .csv file in dir, in lexicographic order.
// A file that fails to parse is logged as a warning and skipped; it never
// fails the whole call.
func ReadAllInDir(dir string, logger *slog.Logger) ([]*Table, error) {
	names, err := ListCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	tables := make([]*Table, 0, len(names))
	for _, name := range names {
		t, err := ReadCSV(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable csv", "file", name, "error", err)
			continue
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// ConcatAllInDir reads every .csv file in dir and concatenates them
// row-wise into one table, aligning columns by name. With resetIndex the
// combined table is renumbered 0..N-1; otherwise each source table keeps
// its original row labels, which may repeat across file boundaries.
// A directory without any readable .csv yields (nil, nil).
func ConcatAllInDir(dir string, resetIndex bool, logger *slog.Logger) (*Table, error) {
	tables, err := ReadAllInDir(dir, logger)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}
	combined := tables[0].Copy()
	for _, t := range tables[1:] {
		combined.concat(t)
	}
	if resetIndex {
		combined.ResetIndex()
	}
	return combined, nil
}

// WriteCSV writes the table to path. With saveIndex the row labels are
// written as a leading column with an empty header, matching the dialect
// ReadCSV expects apart from that index column.
func WriteCSV(path string, t *Table, saveIndex bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	records := make([][]string, 0, t.NumRows()+1)
	header := t.Columns()
	if saveIndex {
		header = append([]string{""}, header...)
	}
	records = append(records, header)
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		if saveIndex {
			row = append([]string{strconv.Itoa(t.index[i])}, row...)
		}
		records = append(records, row)
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
