package poetry

import (
	"regexp"
	"strings"
)

// Russian stress is written with combining diacritics: an acute for primary
// stress and, in some corpora, a grave for secondary stress. Both count as
// stress markers here.
const (
	combiningAcute = '́'
	combiningGrave = '̀'
)

const vowelLetters = "аеёиоуыэюя"

// squashableConsonants are the consonants whose doubling is collapsed when
// normalizing a rhyme tail ("анна" and "ана" rhyme identically).
const squashableConsonants = "бвгджзйклмнпрстфхцчшщ"

var accentStripper = strings.NewReplacer(string(combiningAcute), "", string(combiningGrave), "")

// stressedVowelPattern matches a vowel letter immediately followed by a
// combining stress mark.
var stressedVowelPattern = regexp.MustCompile(`[аеёиоуыэюя][` + string(combiningAcute) + string(combiningGrave) + `]`)

// nonWordPattern strips punctuation while keeping letters, combining marks,
// digits and whitespace.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s-]`)

// endingSubstitutions unify spellings that sound identical at the end of a
// word. Order matters: "тс" must run before "тьс".
var endingSubstitutions = [...][2]string{
	{"ий", "и"},
	{"ый", "ы"},
	{"тс", "ц"},
	{"тьс", "ц"},
}

// vowelUnifier folds iotated/variant vowels into their base sound for rhyme
// comparison: я→а, э→е, ы→и, ё→о, ю→у.
var vowelUnifier = strings.NewReplacer("я", "а", "э", "е", "ы", "и", "ё", "о", "ю", "у")

// StressMark is the canonical combining accent used when this package adds
// stress to a word itself.
const StressMark = string(combiningAcute)

func isVowel(r rune) bool {
	return strings.ContainsRune(vowelLetters, r)
}

func isStressMark(r rune) bool {
	return r == combiningAcute || r == combiningGrave
}

// RemoveAccents drops combining stress marks from text.
func RemoveAccents(s string) string {
	return accentStripper.Replace(s)
}

// HasStressMark reports whether the form carries at least one stressed vowel.
func HasStressMark(s string) bool {
	return stressedVowelPattern.MatchString(strings.ToLower(s))
}

// CountSyllables counts syllable nuclei (vowel letters) in a word or phrase.
// Stress marks are combining characters and do not affect the count.
func CountSyllables(s string) int {
	n := 0
	for _, r := range strings.ToLower(s) {
		if isVowel(r) {
			n++
		}
	}
	return n
}

// SplitSyllables splits a word into naive syllables: each syllable ends at
// its vowel, and a trailing consonant cluster sticks to the last syllable.
// Returns nil for words without vowels.
func SplitSyllables(word string) []string {
	clean := []rune(RemoveAccents(strings.ToLower(word)))
	var out []string
	var cur []rune
	for _, r := range clean {
		cur = append(cur, r)
		if isVowel(r) {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	if len(out) == 0 {
		return nil
	}
	if len(cur) > 0 {
		out[len(out)-1] += string(cur)
	}
	return out
}

// SquashDoubleConsonants collapses runs of a repeated consonant into one.
func SquashDoubleConsonants(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == prev && strings.ContainsRune(squashableConsonants, r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func unifyEndings(s string) string {
	for _, sub := range endingSubstitutions {
		s = strings.ReplaceAll(s, sub[0], sub[1])
	}
	return s
}

// NormalizeRhymeTail canonicalizes the raw tail of a word (from its stressed
// vowel to the end) into a rhyme-ending key.
func NormalizeRhymeTail(tail string) string {
	s := RemoveAccents(tail)
	s = SquashDoubleConsonants(s)
	s = unifyEndings(s)
	s = vowelUnifier.Replace(s)
	return strings.TrimSpace(s)
}

// ExtractRhymeKey derives the rhyme-ending key from stressed text: the
// normalized substring from the last stressed vowel through the end of the
// word carrying it. Works on single words and on whole accented lines.
// Returns "" when the text carries no stress marker.
func ExtractRhymeKey(accented string) string {
	s := nonWordPattern.ReplaceAllString(strings.ToLower(accented), "")
	locs := stressedVowelPattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return ""
	}
	tail := s[locs[len(locs)-1][0]:]
	if fields := strings.Fields(tail); len(fields) > 0 {
		tail = fields[0]
	}
	return NormalizeRhymeTail(tail)
}

// AccentSingleVowel puts a stress mark on a word that has exactly one vowel.
// Already-stressed forms pass through unchanged. Words with zero or multiple
// vowels and no mark cannot be resolved; ok is false and the word is returned
// as-is.
func AccentSingleVowel(word string) (string, bool) {
	if HasStressMark(word) {
		return word, true
	}
	if CountSyllables(word) != 1 {
		return word, false
	}
	var b strings.Builder
	for _, r := range word {
		b.WriteRune(r)
		if isVowel(r) {
			b.WriteRune(combiningAcute)
		}
	}
	return b.String(), true
}

var supplementWordPattern = regexp.MustCompile(`^[а-яё` + string(combiningAcute) + string(combiningGrave) + `-]+$`)

// IsValidSupplementWord filters supplementary word-list entries: lowercase
// Cyrillic only, at least one vowel, 4–16 letters ignoring stress marks.
func IsValidSupplementWord(word string) bool {
	if !supplementWordPattern.MatchString(word) {
		return false
	}
	if CountSyllables(word) == 0 {
		return false
	}
	n := len([]rune(RemoveAccents(word)))
	return n >= 4 && n <= 16
}
