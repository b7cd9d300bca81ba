package poetry

import "strings"

// PoemLines is the fixed line count of a generated poem.
const PoemLines = 4

// Line is one poem line. The trailing word is the only token the enforcer
// may rewrite; everything before it is preserved verbatim.
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// LastWord returns the line's trailing word without punctuation.
func (l Line) LastWord() string {
	return LastWord(l.Text)
}

// Syllables counts syllable nuclei across the line.
func (l Line) Syllables() int {
	return LineSyllables(l.Text)
}

// GroupReport records the enforcement outcome for one rhyme group.
type GroupReport struct {
	// Indices are the 0-based line positions of the group.
	Indices []int `json:"lines"`
	// Key is the anchor's rhyme-ending key, when it could be resolved.
	Key string `json:"rhyme_key,omitempty"`
	// Ok is true when the whole group shares the anchor key (or the group
	// has a single line and carries no constraint).
	Ok bool `json:"ok"`
	// Substituted lists the line positions whose trailing word was replaced.
	Substituted []int `json:"substituted,omitempty"`
}

// Poem is the assembled output of one generation request.
type Poem struct {
	Lines   []Line        `json:"lines"`
	Scheme  RhymeScheme   `json:"rhyme_scheme"`
	Emotion EmotionVector `json:"emotions"`
	Genre   string        `json:"genre,omitempty"`
	Groups  []GroupReport `json:"groups"`
}

// Assemble joins corrected lines, the request context, and the per-group
// flags into the final Poem. Pure aggregation; inputs are assumed
// well-formed per the upstream contracts.
func Assemble(lines []Line, scheme RhymeScheme, emotion EmotionVector, groups []GroupReport) Poem {
	return Poem{
		Lines:   lines,
		Scheme:  scheme,
		Emotion: emotion,
		Genre:   emotion.Genre(),
		Groups:  groups,
	}
}

// Text renders the poem as newline-joined lines.
func (p Poem) Text() string {
	parts := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, "\n")
}

// Rhymed reports whether every rhyme group enforced successfully.
func (p Poem) Rhymed() bool {
	for _, g := range p.Groups {
		if !g.Ok {
			return false
		}
	}
	return true
}
