// nouns-prep normalizes a tab-separated noun dump into the accented word list
// that supplements the endings dictionary: apostrophe stress marks become
// combining acutes, single-vowel words are accented automatically, and
// everything that is not a clean lowercase Cyrillic word of 4-16 letters is
// dropped.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

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

	words, seen, err := prepareNouns(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := writeWordList(cfg.OutPath, words); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "words_seen=%d words_kept=%d out=%s\n", seen, len(words), cfg.OutPath)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the tab-separated noun dump")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path for the accented word list (one word per line)")
	fs.StringVar(&cfg.Columns, "columns", cfg.Columns, "Comma-separated column names to read from the dump")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// prepareNouns reads the selected columns, normalizes each cell, and returns
// the sorted unique accented words plus the number of non-empty cells seen.
func prepareNouns(cfg Config) ([]string, int, error) {
	f, err := os.Open(cfg.InPath)
	if err != nil {
		return nil, 0, fmt.Errorf("open -in: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndices(header, strings.Split(cfg.Columns, ","))
	if err != nil {
		return nil, 0, err
	}

	seen := 0
	unique := make(map[string]struct{})
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read -in: %w", err)
		}
		for _, idx := range cols {
			if idx >= len(rec) {
				continue
			}
			raw := strings.TrimSpace(rec[idx])
			if raw == "" {
				continue
			}
			seen++
			word, ok := normalizeNoun(raw)
			if !ok {
				continue
			}
			unique[word] = struct{}{}
		}
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, seen, nil
}

func columnIndices(header []string, wanted []string) ([]int, error) {
	out := make([]int, 0, len(wanted))
	for _, name := range wanted {
		name = strings.TrimSpace(name)
		found := -1
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, fmt.Errorf("column %q not found in header %v", name, header)
		}
		out = append(out, found)
	}
	return out, nil
}

// normalizeNoun converts the dump's apostrophe stress notation, accents
// single-vowel words, and keeps only valid stressed supplement words.
func normalizeNoun(raw string) (string, bool) {
	word := strings.ReplaceAll(strings.ToLower(raw), "'", poetry.StressMark)
	word, ok := poetry.AccentSingleVowel(word)
	if !ok {
		return "", false
	}
	if !poetry.IsValidSupplementWord(word) {
		return "", false
	}
	if !poetry.HasStressMark(word) {
		return "", false
	}
	return word, true
}

func writeWordList(path string, words []string) error {
	data := strings.Join(words, "\n")
	if err := fileutils.WriteFileAtomicSameDir(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	return nil
}
