// Command inspect loads one processed dataset, previews its shape, types
// and contents, and shows the feature/target split used for training.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"datastd/internal/config"
	"datastd/internal/dataset"
	"datastd/internal/mlprep"
)

func main() {
	_ = godotenv.Load()

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config/config.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to the YAML configuration file")
	file := flag.String("file", "", "dataset filename to inspect (default: the configured processed dataset)")
	outcome := flag.String("outcome", mlprep.DefaultOutcomeColumn, "name of the outcome column")
	flag.Parse()

	if err := run(*configPath, *file, *outcome); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, file, outcome string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	dir, err := cfg.GetPath("paths.processed_data")
	if err != nil {
		return err
	}
	if file == "" {
		file = cfg.Processed
	}

	fmt.Printf("Configuration from: %s\n", cfg.ConfigPath)
	fmt.Printf("Processed directory: %s\n", dir)
	fmt.Printf("Dataset: %s\n\n", file)

	t, err := dataset.ReadNamed(file, dir)
	if err != nil {
		return err
	}

	dataset.Preview(os.Stdout, t, true, cfg.Processing.PreviewRows)
	fmt.Printf("Describe:\n%s\n\n", t.Describe())

	features, target, err := mlprep.SplitFeaturesTarget(t, outcome)
	if err != nil {
		return err
	}
	mlprep.PreviewSplit(os.Stdout, features, target, true)
	return nil
}
