// poem-generate requests one emotion-conditioned rhymed poem from the oracle
// model, enforces the rhyme scheme against the endings dictionary, and
// optionally records the outcome in the local history database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lyrelab/versesmith/poetry"
	"github.com/lyrelab/versesmith/poetry/provider"
	"github.com/lyrelab/versesmith/poetry/store"
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

	emotion, err := parseEmotionSpec(cfg.Emotions)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	scheme, err := poetry.ParseRhymeScheme(cfg.Scheme)
	if err != nil {
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

	var lookup *poetry.Lookup
	if !cfg.SkipEnforce {
		lookup, err = poetry.LoadLookup(cfg.DictPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	client := provider.NewClient(apiKey, cfg.BaseURL)
	gen := &poetry.Generator{
		Oracle: &provider.PoemOracle{
			Client:      &client,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		},
	}

	rawLines, err := gen.GenerateRaw(ctx, emotion, scheme)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	rawText := poetry.Assemble(rawLines, scheme, emotion, nil).Text()

	var poem poetry.Poem
	if cfg.SkipEnforce {
		poem = poetry.Assemble(rawLines, scheme, emotion, nil)
	} else {
		enforcer := &poetry.Enforcer{Lookup: lookup}
		if cfg.RankEmotions {
			enforcer.Emotion = emotion
		}
		lines, groups, err := enforcer.Enforce(rawLines, scheme)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		poem = poetry.Assemble(lines, scheme, emotion, groups)
	}

	poemID := ""
	if cfg.DBPath != "" {
		poemID, err = saveToHistory(cfg, poem, rawText)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	if cfg.JSONOut {
		b, err := json.MarshalIndent(poem, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stdout, string(b))
	} else {
		fmt.Fprintln(os.Stdout, poem.Text())
	}

	summary := fmt.Sprintf("scheme=%s genre=%s rhymed=%t substitutions=%d",
		poem.Scheme, poem.Genre, poem.Rhymed(), substitutionCount(poem))
	if poemID != "" {
		summary += " poem_id=" + poemID
	}
	fmt.Fprintln(os.Stdout, summary)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.DictPath, "dict", cfg.DictPath, "Path to the word-endings dictionary JSON")
	fs.StringVar(&cfg.Emotions, "emotions", "", "Emotion weights, e.g. joy=0.7,sadness=0.3 (empty for neutral)")
	fs.StringVar(&cfg.Scheme, "scheme", cfg.Scheme, "Rhyme scheme: AABB, ABAB, ABBA or AABA")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Oracle model")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL (empty for the default host)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "API key (overrides OPENROUTER_API_KEY / OPENAI_API_KEY env vars)")
	fs.Int64Var(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "Max completion tokens (0 uses the provider default)")
	fs.Float64Var(&cfg.Temperature, "temperature", cfg.Temperature, "Sampling temperature (0 uses the model default)")
	fs.BoolVar(&cfg.RankEmotions, "rank-emotions", false, "Rank substitution candidates by emotion proximity")
	fs.BoolVar(&cfg.SkipEnforce, "skip-enforce", false, "Output the raw oracle lines without rhyme enforcement")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Optional sqlite history database path")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Optional YAML config file (flags override file values)")
	fs.BoolVar(&cfg.JSONOut, "json", false, "Emit the full poem JSON instead of plain text")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigPath != "" {
		setFlags := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
		fc, err := loadFileConfig(cfg.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fc, setFlags)
	}
	return cfg, nil
}

// parseEmotionSpec parses the comma-separated label=weight emotion flag. An
// empty spec yields the neutral (all-zero) vector.
func parseEmotionSpec(spec string) (poetry.EmotionVector, error) {
	weights := make(map[string]float64)
	if strings.TrimSpace(spec) != "" {
		for _, part := range strings.Split(spec, ",") {
			label, value, found := strings.Cut(strings.TrimSpace(part), "=")
			if !found {
				return nil, fmt.Errorf("bad emotion %q, want label=weight", part)
			}
			w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("bad emotion weight %q: %w", value, err)
			}
			weights[strings.TrimSpace(label)] = w
		}
	}
	return poetry.NewEmotionVector(weights)
}

func substitutionCount(p poetry.Poem) int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Substituted)
	}
	return n
}

func saveToHistory(cfg Config, poem poetry.Poem, rawText string) (string, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	return st.SavePoem(store.Record{
		Scheme:    poem.Scheme,
		Genre:     poem.Genre,
		Model:     cfg.Model,
		Emotions:  poem.Emotion,
		RawText:   rawText,
		FinalText: poem.Text(),
		Rhymed:    poem.Rhymed(),
		Groups:    poem.Groups,
	})
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
