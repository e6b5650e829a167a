// Command process runs the batch standardization pipeline: every CSV in
// the configured raw-data directory is pushed through the schema
// standardizer and written to the processed-data directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"datastd/internal/config"
	"datastd/internal/logging"
	"datastd/internal/pipeline"
)

func main() {
	// .env is optional; a real environment variable wins over the dotfile.
	_ = godotenv.Load()

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config/config.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, cfg.Paths.Logs)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("configuration loaded", "path", cfg.ConfigPath, "target_columns", cfg.Columns.Target)
	if logger.FilePath != "" {
		logger.Info("logging initialized", "log_file", logger.FilePath)
	}

	runner, err := pipeline.New(cfg, logger.Logger)
	if err != nil {
		return err
	}
	if _, err := runner.Run(context.Background()); err != nil {
		return err
	}
	return nil
}
