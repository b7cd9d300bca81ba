package poetry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lyrelab/versesmith/poetry/fileutils"
)

// Entry is one candidate word in the endings dictionary: the phonological
// record plus an optional per-word emotion vector.
type Entry struct {
	Word
	Emotions EmotionVector `json:"emotions,omitempty"`
}

// Lookup is the rhyme-ending dictionary: rhyme key → ordered candidate
// words. It is built once, then read-only for the life of the process, so
// unsynchronized concurrent reads are safe.
type Lookup struct {
	entries map[string][]Entry
	accents map[string]string // clean surface → accented form
	size    int
}

// BuildStats tallies a dictionary build. Malformed entries are skipped, not
// fatal; repeated builds over the same ordered corpus produce identical
// candidate ordering.
type BuildStats struct {
	Total      int
	Kept       int
	Skipped    int
	Duplicates int
	Keys       int
}

// BuildEntries analyzes stressed forms in corpus order into dictionary
// entries. Exact surface-form repeats are deduplicated; distinct surface
// forms sharing a rhyme key are all kept. ErrEmptyCorpus when nothing
// usable remains.
func BuildEntries(forms []string) ([]Entry, BuildStats, error) {
	stats := BuildStats{Total: len(forms)}
	seen := make(map[string]struct{}, len(forms))
	entries := make([]Entry, 0, len(forms))

	for _, form := range forms {
		w, err := Analyze(form)
		if err != nil {
			stats.Skipped++
			continue
		}
		if _, dup := seen[w.Accented]; dup {
			stats.Duplicates++
			continue
		}
		seen[w.Accented] = struct{}{}
		entries = append(entries, Entry{Word: w})
		stats.Kept++
	}

	if len(entries) == 0 {
		return nil, stats, fmt.Errorf("BuildEntries: no usable words in %d forms: %w", len(forms), ErrEmptyCorpus)
	}
	return entries, stats, nil
}

// NewLookup groups entries by rhyme key, preserving the given order per key.
func NewLookup(entries []Entry) (*Lookup, error) {
	l := &Lookup{
		entries: make(map[string][]Entry),
		accents: make(map[string]string),
	}
	for _, e := range entries {
		if e.Surface == "" || e.RhymeKey == "" {
			continue
		}
		l.entries[e.RhymeKey] = append(l.entries[e.RhymeKey], e)
		if _, ok := l.accents[e.Surface]; !ok {
			l.accents[e.Surface] = e.Accented
		}
		l.size++
	}
	if l.size == 0 {
		return nil, fmt.Errorf("NewLookup: no entries: %w", ErrEmptyCorpus)
	}
	return l, nil
}

// BuildLookup is the one-step corpus → dictionary build.
func BuildLookup(forms []string) (*Lookup, BuildStats, error) {
	entries, stats, err := BuildEntries(forms)
	if err != nil {
		return nil, stats, err
	}
	l, err := NewLookup(entries)
	if err != nil {
		return nil, stats, err
	}
	stats.Keys = len(l.entries)
	return l, stats, nil
}

// Candidates returns the ordered candidate words for a rhyme key. The slice
// is a copy; the dictionary itself is never mutated after build.
func (l *Lookup) Candidates(key string) []Entry {
	src := l.entries[key]
	if len(src) == 0 {
		return nil
	}
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// Accent resolves the stressed form of a clean surface word: dictionary
// forms first, then the single-vowel rule. ok is false when neither applies.
func (l *Lookup) Accent(word string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if accented, ok := l.accents[w]; ok {
		return accented, true
	}
	return AccentSingleVowel(w)
}

// Len returns the total number of entries across all keys.
func (l *Lookup) Len() int { return l.size }

// Keys returns all rhyme keys in sorted order.
func (l *Lookup) Keys() []string {
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the dictionary as the word-endings JSON artifact
// (rhyme key → ordered entry list).
func (l *Lookup) Save(path string, pretty bool) error {
	if err := fileutils.WriteJSONFileAtomic(path, l.entries, pretty); err != nil {
		return fmt.Errorf("Lookup.Save: %w", err)
	}
	return nil
}

// LoadLookup reads a saved word-endings dictionary. Per-key candidate order
// is exactly the file's array order. Emotion labels are canonicalized so
// older artifacts with classifier spellings (no_emotion) keep validating.
func LoadLookup(path string) (*Lookup, error) {
	var raw map[string][]Entry
	if err := fileutils.ReadJSONFile(path, &raw); err != nil {
		return nil, fmt.Errorf("LoadLookup: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(raw))
	for _, key := range keys {
		for _, e := range raw[key] {
			if e.RhymeKey == "" {
				e.RhymeKey = key
			}
			if e.Emotions != nil {
				e.Emotions = canonicalizeEmotions(e.Emotions)
			}
			entries = append(entries, e)
		}
	}

	l, err := NewLookup(entries)
	if err != nil {
		return nil, fmt.Errorf("LoadLookup: %s: %w", path, err)
	}
	return l, nil
}

func canonicalizeEmotions(v EmotionVector) EmotionVector {
	out := make(EmotionVector, len(EmotionLabels))
	for _, label := range EmotionLabels {
		out[label] = 0
	}
	for label, value := range v {
		c := CanonicalEmotionLabel(label)
		if _, ok := out[c]; ok && value > 0 {
			out[c] += value
		}
	}
	return out
}

// stressedFormPattern matches corpus words that may carry stress marks.
var stressedFormPattern = regexp.MustCompile(`[а-яёА-ЯЁ` + string(combiningAcute) + string(combiningGrave) + `-]+`)

// CollectStressedForms extracts the unique stressed word forms from accented
// corpus texts, lowercased, in first-seen order. Unstressed words are
// ignored; they carry no usable stress position.
func CollectStressedForms(texts []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, text := range texts {
		for _, w := range stressedFormPattern.FindAllString(strings.ToLower(text), -1) {
			if !HasStressMark(w) {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
