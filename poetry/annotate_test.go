package poetry

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeClassifier struct {
	mu    sync.Mutex
	calls []string
	err   error
	score func(text string) EmotionVector
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (EmotionVector, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.score != nil {
		return f.score(text), nil
	}
	v, _ := NewEmotionVector(nil)
	return v, nil
}

func TestAnnotateLines(t *testing.T) {
	t.Parallel()

	poem := CorpusPoem{
		PoemText:           "Сияет солнце за горой.\nЗовёт меня за волной!",
		AccentuationMarkup: "Сия́ет со́лнце за горо́й.\nЗовёт меня́ за волно́й!",
	}
	lines, stats := AnnotateLines(poem)
	if stats.Lines != 2 || stats.UnkeyedLines != 0 {
		t.Fatalf("stats=%+v", stats)
	}
	if lines[0].Text != "Сияет солнце за горой" || lines[0].AccentedText != "Сия́ет со́лнце за горо́й" {
		t.Fatalf("punctuation not stripped: %+v", lines[0])
	}
	if lines[0].RhymeKey != "ой" || lines[1].RhymeKey != "ой" {
		t.Fatalf("rhyme keys: %q %q", lines[0].RhymeKey, lines[1].RhymeKey)
	}
	if lines[0].Syllables != 8 {
		t.Fatalf("line 0 syllables=%d, want 8", lines[0].Syllables)
	}
}

func TestAnnotateLines_UnstressedMarkup(t *testing.T) {
	t.Parallel()

	poem := CorpusPoem{
		PoemText:           "Снег идёт\nВетер поёт",
		AccentuationMarkup: "Снег идёт\nВе́тер поёт",
	}
	lines, stats := AnnotateLines(poem)
	if stats.UnkeyedLines != 1 {
		t.Fatalf("stats=%+v, want 1 unkeyed line", stats)
	}
	if lines[0].RhymeKey != "" {
		t.Fatalf("line 0 key=%q, want empty", lines[0].RhymeKey)
	}
	// The key tracks the last stressed vowel anywhere on the line.
	if lines[1].RhymeKey != "етер" {
		t.Fatalf("line 1 key=%q, want %q", lines[1].RhymeKey, "етер")
	}
}

func TestAnnotateLines_MarkupShorterThanPoem(t *testing.T) {
	t.Parallel()

	poem := CorpusPoem{
		PoemText:           "Первая строка\nВторая строка\nТретья строка",
		AccentuationMarkup: "Пе́рвая строка́",
	}
	lines, stats := AnnotateLines(poem)
	if len(lines) != 1 || stats.Lines != 1 {
		t.Fatalf("got %d lines, want 1 (stats=%+v)", len(lines), stats)
	}
}

func TestAnnotateCorpus(t *testing.T) {
	t.Parallel()

	joy, _ := NewEmotionVector(map[string]float64{"joy": 1})
	classifier := &fakeClassifier{score: func(string) EmotionVector { return joy }}

	poems := []CorpusPoem{
		{PoemText: "Сияет солнце за горой", AccentuationMarkup: "Сия́ет со́лнце за горо́й", RhymeScheme: "AABB"},
		{PoemText: "Зовёт меня за волной", AccentuationMarkup: "Зовёт меня́ за волно́й"},
	}
	got, stats, err := AnnotateCorpus(context.Background(), poems, classifier, AnnotateOptions{Concurrency: 2})
	if err != nil {
		t.Fatalf("AnnotateCorpus: %v", err)
	}
	if stats.Poems != 2 || stats.Lines != 2 {
		t.Fatalf("stats=%+v", stats)
	}
	if got[0].RhymeScheme != "AABB" || got[1].RhymeScheme != "" {
		t.Fatalf("scheme order lost: %+v", got)
	}
	if diff := cmp.Diff(joy, got[1].Emotions); diff != "" {
		t.Fatalf("emotions mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotateCorpus_TruncatesClassifierInput(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{}
	long := strings.Repeat("я", 600)
	_, _, err := AnnotateCorpus(context.Background(), []CorpusPoem{{PoemText: long, AccentuationMarkup: long}}, classifier, AnnotateOptions{})
	if err != nil {
		t.Fatalf("AnnotateCorpus: %v", err)
	}
	if n := len([]rune(classifier.calls[0])); n != 512 {
		t.Fatalf("classifier saw %d runes, want 512", n)
	}
}

func TestAnnotateCorpus_ClassifierError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("quota exceeded")
	classifier := &fakeClassifier{err: wantErr}
	_, _, err := AnnotateCorpus(context.Background(), []CorpusPoem{{PoemText: "строка", AccentuationMarkup: "строка́"}}, classifier, AnnotateOptions{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v, want wrapped classifier error", err)
	}
}

func TestClassifyEntries(t *testing.T) {
	t.Parallel()

	sadness, _ := NewEmotionVector(map[string]float64{"sadness": 1})
	classifier := &fakeClassifier{score: func(string) EmotionVector { return sadness }}

	entries, _, err := BuildEntries([]string{"зимо́й", "весно́й"})
	if err != nil {
		t.Fatalf("BuildEntries: %v", err)
	}
	got, err := ClassifyEntries(context.Background(), entries, classifier, 2)
	if err != nil {
		t.Fatalf("ClassifyEntries: %v", err)
	}
	if got[0].Surface != "зимой" || got[1].Surface != "весной" {
		t.Fatalf("entry order lost: %+v", got)
	}
	for _, e := range got {
		if diff := cmp.Diff(sadness, e.Emotions); diff != "" {
			t.Fatalf("emotions mismatch for %q (-want +got):\n%s", e.Surface, diff)
		}
	}
	// Input slice untouched.
	if entries[0].Emotions != nil {
		t.Fatalf("input entries mutated: %+v", entries[0])
	}
}
