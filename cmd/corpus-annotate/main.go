// corpus-annotate scores every poem of an accented corpus with the emotion
// classifier and attaches per-line phonology, producing the annotated corpus
// the dataset formatter consumes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lyrelab/versesmith/poetry"
	"github.com/lyrelab/versesmith/poetry/fileutils"
	"github.com/lyrelab/versesmith/poetry/provider"
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

	apiKey := resolveAPIKey(cfg.APIKey)
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing API key (pass -api-key or set OPENROUTER_API_KEY / OPENAI_API_KEY)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var corpus []poetry.CorpusPoem
	if err := fileutils.ReadJSONFile(cfg.InPath, &corpus); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	client := provider.NewClient(apiKey, cfg.BaseURL)
	classifier := &provider.EmotionClassifier{Client: &client, Model: cfg.Model}

	annotated, stats, err := poetry.AnnotateCorpus(ctx, corpus, classifier, poetry.AnnotateOptions{
		Concurrency:      cfg.Concurrency,
		ClassifyMaxRunes: cfg.MaxRunes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := fileutils.WriteJSONFileAtomic(cfg.OutPath, annotated, cfg.Pretty); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "poems=%d lines=%d unkeyed_lines=%d out=%s\n",
		stats.Poems, stats.Lines, stats.UnkeyedLines, cfg.OutPath)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the accented poem corpus JSON")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path for the annotated corpus JSON")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Emotion classifier model")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL override (empty for the default host)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "API key (overrides OPENROUTER_API_KEY / OPENAI_API_KEY env vars)")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Max concurrent classifier calls")
	fs.IntVar(&cfg.MaxRunes, "max-runes", cfg.MaxRunes, "Max runes of poem text sent to the classifier")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Pretty-print the annotated corpus JSON")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}
