// Package pipeline orchestrates a batch run: enumerate the raw-data
// directory, push every CSV through the schema standardizer, write the
// results, and track per-file success and failure under the configured
// continue-on-error policy.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"datastd/internal/config"
	"datastd/internal/dataset"
	"datastd/internal/schema"
)

// Summary holds the per-file outcome counts of one batch run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Runner executes batch runs. Construct with New; a Runner is safe to
// reuse for consecutive (not concurrent) runs.
type Runner struct {
	cfg *config.Config
	log *slog.Logger
}

// New validates that the configuration names the directories a batch run
// needs and returns a Runner. Every log line of a run carries a fresh
// run_id so interleaved log files stay attributable.
func New(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg.Paths.RawData == "" {
		return nil, fmt.Errorf("%w: paths.raw_data", config.ErrMissingPathKey)
	}
	if cfg.Paths.ProcessedData == "" {
		return nil, fmt.Errorf("%w: paths.processed_data", config.ErrMissingPathKey)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, log: logger}, nil
}

// Run processes every .csv file in the raw-data directory, in
// lexicographic order. Enumeration failures are always fatal. A per-file
// failure is logged and counted; with continue_on_error it is skipped,
// otherwise it aborts the remaining files immediately. A directory with
// no .csv entries is not an error: the run ends with a zero summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var s Summary
	log := r.log.With("run_id", uuid.NewString())

	log.Info("processing all datasets",
		"raw_dir", r.cfg.Paths.RawData,
		"out_dir", r.cfg.Paths.ProcessedData)

	files, err := dataset.ListCSVFiles(r.cfg.Paths.RawData)
	if err != nil {
		log.Error("enumerating raw data directory failed", "error", err)
		return s, err
	}
	if len(files) == 0 {
		log.Warn("no csv files found", "dir", r.cfg.Paths.RawData)
		r.summarize(log, s)
		return s, nil
	}
	log.Info("found csv files", "count", len(files), "files", files)

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return s, fmt.Errorf("run cancelled: %w", err)
		}
		if err := r.processFile(log, name); err != nil {
			log.Error("failed to process file", "file", name, "error", err)
			s.Failed++
			if !r.cfg.Processing.ContinueOnError {
				r.summarize(log, s)
				return s, fmt.Errorf("processing %s: %w", name, err)
			}
			continue
		}
		s.Succeeded++
	}

	r.summarize(log, s)
	return s, nil
}

func (r *Runner) summarize(log *slog.Logger, s Summary) {
	log.Info("processing complete", "succeeded", s.Succeeded, "failed", s.Failed)
}

// processFile runs one file through read -> standardize -> write.
func (r *Runner) processFile(log *slog.Logger, name string) error {
	log = log.With("file", name)
	log.Info("processing started")

	t, err := dataset.ReadNamed(name, r.cfg.Paths.RawData)
	if err != nil {
		return err
	}
	rows, cols := t.Shape()
	log.Info("loaded", "rows", rows, "cols", cols, "columns", t.Columns())

	out, report, err := schema.Standardize(t,
		r.cfg.Columns.Drop, r.cfg.Columns.Rename, r.cfg.Columns.Target)
	if err != nil {
		return err
	}
	for _, col := range report.Dropped {
		log.Info("dropped column", "column", col)
	}
	for _, pair := range report.Renamed {
		log.Info("renamed column", "from", pair[0], "to", pair[1])
	}
	rows, cols = out.Shape()
	log.Info("standardized", "rows", rows, "cols", cols, "columns", out.Columns())

	if err := os.MkdirAll(r.cfg.Paths.ProcessedData, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(r.cfg.Paths.ProcessedData, r.cfg.Processing.OutputPrefix+name)
	if err := dataset.WriteCSV(outPath, out, r.cfg.Processing.SaveIndex); err != nil {
		return err
	}
	log.Info("saved", "path", outPath)

	if n := r.cfg.Processing.PreviewRows; n > 0 {
		log.Info("preview of processed data", "rows", n, "head", "\n"+out.Head(n).String())
	}
	return nil
}
