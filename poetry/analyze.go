package poetry

import (
	"fmt"
	"regexp"
	"strings"
)

// Word is the phonological record for one stressed form. Immutable once
// produced by Analyze; many words may share a rhyme-ending key.
type Word struct {
	// Surface is the clean (accent-stripped, lowercased) spelling.
	Surface string `json:"word"`
	// Accented is the stressed form the word was analyzed from.
	Accented string `json:"accented_word"`
	// Syllables is the total syllable-nucleus count.
	Syllables int `json:"syllable_count"`
	// StressIndex is the 0-based index of the stressed syllable.
	StressIndex int `json:"stress_index"`
	// RhymeKey is the normalized tail from the stressed vowel to the end.
	RhymeKey string `json:"rhyme_key"`
}

// Analyze computes the phonological record for a single stressed word form.
// The form must be non-empty and carry a stress marker; otherwise
// ErrMalformedInput is returned. Pure function, no side effects.
func Analyze(stressedForm string) (Word, error) {
	form := strings.ToLower(strings.TrimSpace(stressedForm))
	if form == "" {
		return Word{}, fmt.Errorf("Analyze: empty form: %w", ErrMalformedInput)
	}
	if !HasStressMark(form) {
		return Word{}, fmt.Errorf("Analyze: %q has no stress marker: %w", form, ErrMalformedInput)
	}

	key := ExtractRhymeKey(form)
	if key == "" {
		return Word{}, fmt.Errorf("Analyze: %q yields no rhyme key: %w", form, ErrMalformedInput)
	}

	clean := RemoveAccents(form)
	syllables := CountSyllables(clean)
	if syllables == 0 {
		return Word{}, fmt.Errorf("Analyze: %q has no syllable nucleus: %w", form, ErrMalformedInput)
	}

	return Word{
		Surface:     clean,
		Accented:    form,
		Syllables:   syllables,
		StressIndex: stressIndex(form),
		RhymeKey:    key,
	}, nil
}

// stressIndex counts vowels preceding the last stressed vowel of the form.
func stressIndex(form string) int {
	runes := []rune(form)
	idx, seen := 0, 0
	for i, r := range runes {
		if !isVowel(r) {
			continue
		}
		if i+1 < len(runes) && isStressMark(runes[i+1]) {
			idx = seen
		}
		seen++
	}
	return idx
}

// trailingWordPattern captures the final run of letters in a line; anything
// after it (closing punctuation, quotes) is left alone on substitution.
var trailingWordPattern = regexp.MustCompile(`([\p{L}\p{M}-]+)[^\p{L}\p{M}]*$`)

// lineWordPattern extracts words (with any combining marks) from a line.
var lineWordPattern = regexp.MustCompile(`[\p{L}\p{M}-]+`)

// LastWord returns the trailing word of a line without surrounding
// punctuation, or "" for a line with no letters.
func LastWord(line string) string {
	m := trailingWordPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// ReplaceLastWord swaps only the trailing word of a line for replacement,
// preserving every preceding token and any trailing punctuation verbatim.
func ReplaceLastWord(line, replacement string) string {
	loc := trailingWordPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[2]] + replacement + line[loc[3]:]
}

// LineWords returns the words of a line in order.
func LineWords(line string) []string {
	return lineWordPattern.FindAllString(line, -1)
}

// LineSyllables counts syllable nuclei across all words of a line.
func LineSyllables(line string) int {
	return CountSyllables(line)
}
