package poetry

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// EmotionClassifier scores a text over the fixed emotion label set.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (EmotionVector, error)
}

// CorpusPoem is one raw training-corpus record: the plain poem plus its
// stress-annotated markup, line for line.
type CorpusPoem struct {
	PoemText           string `json:"poem_text"`
	AccentuationMarkup string `json:"accentuation_markup"`
	RhymeScheme        string `json:"rhyme_scheme,omitempty"`
}

// AnnotatedLine carries the per-line phonology consumed by the dataset
// formatter and, externally, by model fine-tuning.
type AnnotatedLine struct {
	Text             string   `json:"text"`
	AccentedText     string   `json:"accented_text"`
	Syllables        int      `json:"syllable_count"`
	RhymeKey         string   `json:"rhyme_key,omitempty"`
	SyllableDivision []string `json:"syllable_division,omitempty"`
}

// AnnotatedPoem is a corpus poem with its emotion vector and line phonology.
type AnnotatedPoem struct {
	PoemText           string          `json:"poem_text"`
	AccentuationMarkup string          `json:"accentuation_markup"`
	RhymeScheme        string          `json:"rhyme_scheme,omitempty"`
	Emotions           EmotionVector   `json:"emotions"`
	Lines              []AnnotatedLine `json:"lines"`
}

// AnnotateOptions controls corpus annotation.
type AnnotateOptions struct {
	// Concurrency bounds parallel classifier calls (defaults to 4).
	Concurrency int

	// ClassifyMaxRunes truncates the text sent to the classifier
	// (defaults to 512, the classifier context the corpus was scored with).
	ClassifyMaxRunes int
}

// AnnotateStats tallies an annotation run. Lines whose markup carries no
// stress are kept without a rhyme key rather than dropped.
type AnnotateStats struct {
	Poems        int
	Lines        int
	UnkeyedLines int
}

// trailingPunctuation is stripped from line ends before analysis.
var trailingPunctuation = regexp.MustCompile(`[.,!?\-—:;"«»']+$`)

// AnnotateLines computes the per-line phonology of one corpus poem without
// touching the classifier. Pure function.
func AnnotateLines(poem CorpusPoem) ([]AnnotatedLine, AnnotateStats) {
	var stats AnnotateStats
	lines := strings.Split(strings.TrimSpace(poem.PoemText), "\n")
	accented := strings.Split(strings.TrimSpace(poem.AccentuationMarkup), "\n")

	n := len(lines)
	if len(accented) < n {
		n = len(accented)
	}

	out := make([]AnnotatedLine, 0, n)
	for i := 0; i < n; i++ {
		clean := trailingPunctuation.ReplaceAllString(strings.TrimSpace(lines[i]), "")
		cleanAccented := trailingPunctuation.ReplaceAllString(strings.TrimSpace(accented[i]), "")

		var division []string
		for _, w := range LineWords(clean) {
			division = append(division, SplitSyllables(w)...)
		}

		key := ExtractRhymeKey(cleanAccented)
		if key == "" {
			stats.UnkeyedLines++
		}

		out = append(out, AnnotatedLine{
			Text:             clean,
			AccentedText:     cleanAccented,
			Syllables:        LineSyllables(clean),
			RhymeKey:         key,
			SyllableDivision: division,
		})
		stats.Lines++
	}
	return out, stats
}

// AnnotateCorpus runs the classifier and line phonology over every corpus
// poem, with bounded concurrency. Output order matches input order.
func AnnotateCorpus(ctx context.Context, poems []CorpusPoem, classifier EmotionClassifier, opts AnnotateOptions) ([]AnnotatedPoem, AnnotateStats, error) {
	if classifier == nil {
		return nil, AnnotateStats{}, fmt.Errorf("AnnotateCorpus: nil classifier")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.ClassifyMaxRunes <= 0 {
		opts.ClassifyMaxRunes = 512
	}

	out := make([]AnnotatedPoem, len(poems))
	statsCh := make([]AnnotateStats, len(poems))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, poem := range poems {
		i, poem := i, poem
		g.Go(func() error {
			lines, stats := AnnotateLines(poem)
			statsCh[i] = stats

			text := poem.PoemText
			if runes := []rune(text); len(runes) > opts.ClassifyMaxRunes {
				text = string(runes[:opts.ClassifyMaxRunes])
			}
			emotions, err := classifier.Classify(ctx, text)
			if err != nil {
				return fmt.Errorf("AnnotateCorpus: classify poem %d: %w", i, err)
			}

			out[i] = AnnotatedPoem{
				PoemText:           poem.PoemText,
				AccentuationMarkup: poem.AccentuationMarkup,
				RhymeScheme:        poem.RhymeScheme,
				Emotions:           emotions,
				Lines:              lines,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, AnnotateStats{}, err
	}

	var total AnnotateStats
	total.Poems = len(poems)
	for _, s := range statsCh {
		total.Lines += s.Lines
		total.UnkeyedLines += s.UnkeyedLines
	}
	return out, total, nil
}

// ClassifyEntries attaches per-word emotion vectors to dictionary entries,
// with bounded concurrency. Entry order is preserved.
func ClassifyEntries(ctx context.Context, entries []Entry, classifier EmotionClassifier, concurrency int) ([]Entry, error) {
	if classifier == nil {
		return nil, fmt.Errorf("ClassifyEntries: nil classifier")
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	out := make([]Entry, len(entries))
	copy(out, entries)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range out {
		i := i
		g.Go(func() error {
			emotions, err := classifier.Classify(ctx, out[i].Surface)
			if err != nil {
				return fmt.Errorf("ClassifyEntries: classify %q: %w", out[i].Surface, err)
			}
			out[i].Emotions = emotions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
