// endings-dict builds the word-endings dictionary from an accented poem
// corpus, optionally supplemented with a prepared noun list and per-word
// emotion vectors from the classifier model.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forms, err := collectForms(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	entries, stats, err := poetry.BuildEntries(forms)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.Classify {
		apiKey := resolveAPIKey(cfg.APIKey)
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "missing API key (pass -api-key or set OPENROUTER_API_KEY / OPENAI_API_KEY)")
			os.Exit(2)
		}
		client := provider.NewClient(apiKey, cfg.BaseURL)
		classifier := &provider.EmotionClassifier{Client: &client, Model: cfg.Model}
		entries, err = poetry.ClassifyEntries(ctx, entries, classifier, cfg.Concurrency)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	lookup, err := poetry.NewLookup(entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := lookup.Save(cfg.OutPath, cfg.Pretty); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "forms_total=%d kept=%d skipped=%d duplicates=%d keys=%d out=%s\n",
		stats.Total, stats.Kept, stats.Skipped, stats.Duplicates, len(lookup.Keys()), cfg.OutPath)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.CorpusPath, "corpus", cfg.CorpusPath, "Path to the accented poem corpus JSON")
	fs.StringVar(&cfg.NounsPath, "nouns", cfg.NounsPath, "Optional prepared noun list (one accented word per line)")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path for the word-endings dictionary JSON")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Pretty-print the dictionary JSON")
	fs.BoolVar(&cfg.Classify, "classify", false, "Attach per-word emotion vectors via the classifier model")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Classifier model (required with -classify)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL override (empty for the default host)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "API key (overrides OPENROUTER_API_KEY / OPENAI_API_KEY env vars)")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Max concurrent classifier calls")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// collectForms gathers unique stressed word forms from the corpus markup,
// then appends the supplement noun list.
func collectForms(cfg Config) ([]string, error) {
	var corpus []poetry.CorpusPoem
	if err := fileutils.ReadJSONFile(cfg.CorpusPath, &corpus); err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(corpus))
	for _, p := range corpus {
		texts = append(texts, p.AccentuationMarkup)
	}
	forms := poetry.CollectStressedForms(texts)

	if cfg.NounsPath != "" {
		nouns, err := readWordList(cfg.NounsPath)
		if err != nil {
			return nil, err
		}
		forms = append(forms, nouns...)
	}
	return forms, nil
}

func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open -nouns: %w", err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan -nouns: %w", err)
	}
	return words, nil
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
