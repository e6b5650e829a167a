package dataset

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadCSV_ValuesMatchSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.csv", "A,B,C\n1,4,7\n2,5,8\n3,6,9\n")

	tbl, err := ReadCSV(filepath.Join(dir, "data.csv"))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if got, want := tbl.Columns(), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", tbl.NumRows())
	}
	if got, want := tbl.Row(1), []string{"2", "5", "8"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Row(1) = %v, want %v", got, want)
	}
}

func TestReadCSV_BOMStripped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bom.csv", "\ufeffA,B\n1,2\n")

	tbl, err := ReadCSV(filepath.Join(dir, "bom.csv"))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if got, want := tbl.Columns(), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestReadCSV_Failures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.csv", "")
	writeFile(t, dir, "ragged.csv", "A,B\n1,2,3\n")

	if _, err := ReadCSV(filepath.Join(dir, "missing.csv")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file error = %v, want ErrFileNotFound", err)
	}
	if _, err := ReadCSV(filepath.Join(dir, "empty.csv")); !errors.Is(err, ErrEmptyData) {
		t.Errorf("empty file error = %v, want ErrEmptyData", err)
	}
	if _, err := ReadCSV(filepath.Join(dir, "ragged.csv")); !errors.Is(err, ErrParse) {
		t.Errorf("ragged file error = %v, want ErrParse", err)
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "header.csv", "A,B\n")

	tbl, err := ReadCSV(filepath.Join(dir, "header.csv"))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if tbl.NumRows() != 0 {
		t.Errorf("NumRows() = %d, want 0", tbl.NumRows())
	}
}

func TestReadNamed(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "data.csv", "A,B\n1,2\n")

	tbl, err := ReadNamed("data.csv", dir)
	if err != nil {
		t.Fatalf("ReadNamed() error = %v", err)
	}
	if got, want := tbl.Row(0), []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Row(0) = %v, want %v", got, want)
	}

	if _, err := ReadNamed("data.csv", filepath.Join(dir, "nope")); !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("missing dir error = %v, want ErrDirectoryNotFound", err)
	}
	if _, err := ReadNamed("data.csv", file); !errors.Is(err, ErrNotADirectory) {
		t.Errorf("file-as-dir error = %v, want ErrNotADirectory", err)
	}
}

func TestReadFirstInDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "X\n2\n")
	writeFile(t, dir, "a.csv", "X\n1\n")
	writeFile(t, dir, "notes.txt", "ignored")

	tbl, err := ReadFirstInDir(dir)
	if err != nil {
		t.Fatalf("ReadFirstInDir() error = %v", err)
	}
	// Lexicographic order: a.csv wins.
	if got := tbl.Row(0)[0]; got != "1" {
		t.Errorf("first table value = %q, want %q", got, "1")
	}
}

func TestReadFirstInDir_NoCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "ignored")

	tbl, err := ReadFirstInDir(dir)
	if err != nil {
		t.Fatalf("ReadFirstInDir() error = %v", err)
	}
	if tbl != nil {
		t.Errorf("ReadFirstInDir() = %v, want nil for no csv entries", tbl)
	}
}

func TestReadAllInDir_SkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "A\n1\n")
	writeFile(t, dir, "bad.csv", "A,B\n1,2,3\n")
	writeFile(t, dir, "c.csv", "A\n3\n")

	tables, err := ReadAllInDir(dir, discardLogger())
	if err != nil {
		t.Fatalf("ReadAllInDir() error = %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2 (malformed skipped)", len(tables))
	}
}

func TestConcatAllInDir_ResetIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "A,B\n1,4\n2,5\n3,6\n")
	writeFile(t, dir, "b.csv", "A,B\n10,13\n11,14\n")

	tbl, err := ConcatAllInDir(dir, true, discardLogger())
	if err != nil {
		t.Fatalf("ConcatAllInDir() error = %v", err)
	}
	if tbl.NumRows() != 5 {
		t.Fatalf("NumRows() = %d, want 5", tbl.NumRows())
	}
	if got, want := tbl.Index(), []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Index() = %v, want %v", got, want)
	}
	if got, want := tbl.Row(3), []string{"10", "13"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Row(3) = %v, want %v", got, want)
	}
}

func TestConcatAllInDir_PreserveIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "A\n1\n2\n3\n")
	writeFile(t, dir, "b.csv", "A\n10\n11\n")

	tbl, err := ConcatAllInDir(dir, false, discardLogger())
	if err != nil {
		t.Fatalf("ConcatAllInDir() error = %v", err)
	}
	// Each source table keeps its own 0-based labels, so they repeat.
	if got, want := tbl.Index(), []int{0, 1, 2, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Index() = %v, want %v", got, want)
	}
}

func TestConcatAllInDir_Empty(t *testing.T) {
	tbl, err := ConcatAllInDir(t.TempDir(), true, discardLogger())
	if err != nil {
		t.Fatalf("ConcatAllInDir() error = %v", err)
	}
	if tbl != nil {
		t.Errorf("ConcatAllInDir() = %v, want nil for empty dir", tbl)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := mustNew(t, []string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})

	path := filepath.Join(dir, "out.csv")
	if err := WriteCSV(path, src, false); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	back, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if got, want := back.Columns(), src.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if got, want := back.Row(1), src.Row(1); !reflect.DeepEqual(got, want) {
		t.Errorf("Row(1) = %v, want %v", got, want)
	}
}

func TestWriteCSV_SaveIndex(t *testing.T) {
	dir := t.TempDir()
	src := mustNew(t, []string{"A"}, [][]string{{"x"}, {"y"}})

	path := filepath.Join(dir, "out.csv")
	if err := WriteCSV(path, src, true); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := ",A\n0,x\n1,y\n"
	if string(raw) != want {
		t.Errorf("file content = %q, want %q", string(raw), want)
	}
}
