// dataset-format turns an annotated corpus into the line-numbered training
// texts the poem model is fine-tuned on, one JSON object per line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lyrelab/versesmith/poetry"
	"github.com/lyrelab/versesmith/poetry/fileutils"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	var annotated []poetry.AnnotatedPoem
	if err := fileutils.ReadJSONFile(cfg.InPath, &annotated); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	samples := poetry.FormatTrainingSamples(annotated)
	if err := poetry.WriteTrainingSamples(cfg.OutPath, samples); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "samples=%d out=%s\n", len(samples), cfg.OutPath)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the annotated corpus JSON")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path for the training JSONL")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
