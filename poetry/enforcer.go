package poetry

import (
	"fmt"
	"sort"
	"strings"
)

// Accenter resolves the stressed form of a clean surface word. *Lookup
// satisfies this via its own accent index plus the single-vowel rule.
type Accenter interface {
	Accent(word string) (string, bool)
}

// Enforcer rewrites non-conforming trailing words so every rhyme group of a
// poem converges on its anchor's rhyme-ending key. The first line of a group
// is the anchor and is never altered.
type Enforcer struct {
	Lookup *Lookup

	// Accent overrides the accenter; defaults to Lookup.
	Accent Accenter

	// Emotion, when set, reorders candidates by euclidean proximity to the
	// poem emotion before the first-unused pick. The sort is stable, with
	// dictionary order as tie-break, so selection stays deterministic.
	Emotion EmotionVector
}

// Enforce verifies each rhyme group of the scheme and substitutes trailing
// words where needed. Returns the corrected lines and one report per group.
// Already-conforming groups pass through untouched, so re-running Enforce on
// its own output is a no-op. Rhyme shortfalls never error; they surface as
// Ok=false on the group report.
func (e *Enforcer) Enforce(lines []Line, scheme RhymeScheme) ([]Line, []GroupReport, error) {
	if e.Lookup == nil {
		return nil, nil, fmt.Errorf("Enforce: nil lookup")
	}
	if !scheme.Valid() {
		return nil, nil, fmt.Errorf("Enforce: invalid rhyme scheme %q", scheme)
	}
	if len(lines) != PoemLines {
		return nil, nil, fmt.Errorf("Enforce: got %d lines, want %d", len(lines), PoemLines)
	}

	accent := e.Accent
	if accent == nil {
		accent = e.Lookup
	}

	out := make([]Line, len(lines))
	copy(out, lines)

	used := make(map[string]bool)
	var reports []GroupReport

	for _, group := range scheme.Groups() {
		reports = append(reports, e.enforceGroup(out, group, accent, used))
	}
	return out, reports, nil
}

func (e *Enforcer) enforceGroup(lines []Line, group []int, accent Accenter, used map[string]bool) GroupReport {
	report := GroupReport{Indices: group}

	// Singleton groups carry no rhyme constraint.
	if len(group) < 2 {
		report.Ok = true
		return report
	}

	// Dictionary surfaces are lowercase, so casing is stripped before any
	// comparison against the pool or the used set.
	anchorWord := strings.ToLower(lines[group[0]].LastWord())
	key, ok := e.wordKey(anchorWord, accent)
	if !ok {
		// Unresolvable anchor: leave the whole group untouched.
		return report
	}
	report.Key = key

	conforming := make(map[int]bool, len(group))
	conforming[group[0]] = true
	allConform := true
	for _, idx := range group[1:] {
		k, ok := e.wordKey(lines[idx].LastWord(), accent)
		if ok && k == key {
			conforming[idx] = true
		} else {
			allConform = false
		}
	}
	if allConform {
		report.Ok = true
		return report
	}

	candidates := e.candidates(key, anchorWord)
	if len(candidates) == 0 {
		// Graceful degradation: never fabricate a word.
		return report
	}

	used[anchorWord] = true
	for idx := range conforming {
		used[strings.ToLower(lines[idx].LastWord())] = true
	}

	for _, idx := range group[1:] {
		if conforming[idx] {
			continue
		}
		chosen := pickCandidate(candidates, CountSyllables(lines[idx].LastWord()), used)
		used[chosen.Surface] = true
		lines[idx].Text = ReplaceLastWord(lines[idx].Text, chosen.Surface)
		report.Substituted = append(report.Substituted, idx)
	}

	report.Ok = true
	return report
}

// wordKey resolves the rhyme-ending key of a line's trailing word.
func (e *Enforcer) wordKey(word string, accent Accenter) (string, bool) {
	if word == "" {
		return "", false
	}
	accented, ok := accent.Accent(word)
	if !ok {
		return "", false
	}
	key := ExtractRhymeKey(accented)
	return key, key != ""
}

// candidates returns the substitution pool for the anchor key, excluding the
// anchor word itself, optionally reordered by emotion proximity.
func (e *Enforcer) candidates(key, anchorWord string) []Entry {
	all := e.Lookup.Candidates(key)
	pool := make([]Entry, 0, len(all))
	for _, c := range all {
		if c.Surface == anchorWord {
			continue
		}
		pool = append(pool, c)
	}
	if e.Emotion != nil && len(pool) > 1 {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Emotions.Distance(e.Emotion) < pool[j].Emotions.Distance(e.Emotion)
		})
	}
	return pool
}

// pickCandidate applies the selection policy: same-syllable-count candidates
// first (meter preservation is best-effort), first not yet used in this
// poem, else the first candidate outright.
func pickCandidate(candidates []Entry, syllables int, used map[string]bool) Entry {
	pool := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		if c.Syllables == syllables {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}
	for _, c := range pool {
		if !used[c.Surface] {
			return c
		}
	}
	return pool[0]
}
