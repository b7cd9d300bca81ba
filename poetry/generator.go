package poetry

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// PoemMarker separates the prompt echo from the poem body in oracle output.
const PoemMarker = "[СТИХ]"

// Oracle is the external text-generation model, consumed as an opaque
// prompt → raw text function. A single synchronous call; retry/backoff
// policy belongs to the implementation or the calling service, never here.
type Oracle interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Generator is the generation orchestrator: it builds the oracle prompt,
// parses the raw output into lines, and runs rhyme enforcement against the
// shared read-only lookup dictionary.
type Generator struct {
	Oracle Oracle
	Lookup *Lookup

	// RankByEmotion enables the deterministic emotion-proximity candidate
	// ranking during enforcement.
	RankByEmotion bool

	// SkipEnforce leaves the raw lines as generated (all groups unchecked).
	SkipEnforce bool
}

// BuildPrompt encodes the emotion vector and the desired scheme/line count
// into the oracle prompt.
func BuildPrompt(emotion EmotionVector, scheme RhymeScheme) string {
	r := strings.NewReplacer(
		"<EMOTIONS>", emotion.Russian(),
		"<RHYME_SCHEME>", string(scheme),
		"<GENRE>", emotion.Genre(),
		"<LINE_COUNT>", strconv.Itoa(PoemLines),
	)
	return r.Replace(generationPromptTemplate)
}

// ParseRawPoem extracts exactly PoemLines lines from raw oracle output: the
// text after the last [СТИХ] marker, numbered lines retained and stripped,
// blanks removed. Output with extra usable lines is truncated; fewer than
// PoemLines usable lines is ErrGenerationParse.
func ParseRawPoem(output string) ([]Line, error) {
	body := StripBoxed(output)
	if i := strings.LastIndex(body, PoemMarker); i >= 0 {
		body = body[i+len(PoemMarker):]
	}

	lines := strings.Split(strings.TrimSpace(body), "\n")
	if numbered := RetainNumberedLines(lines); len(numbered) > 0 {
		lines = StripLineNumbers(numbered)
	}
	lines = RemoveBlankLines(lines)

	if len(lines) < PoemLines {
		return nil, fmt.Errorf("ParseRawPoem: %d usable lines, want %d: %w", len(lines), PoemLines, ErrGenerationParse)
	}

	out := make([]Line, 0, PoemLines)
	for i, text := range lines[:PoemLines] {
		out = append(out, Line{Index: i, Text: strings.TrimSpace(text)})
	}
	return out, nil
}

// GenerateRaw validates the request, invokes the oracle once, and parses its
// output into raw (unenforced) lines. A parse failure surfaces to the
// caller untouched; re-prompting is the caller's decision.
func (g *Generator) GenerateRaw(ctx context.Context, emotion EmotionVector, scheme RhymeScheme) ([]Line, error) {
	if g.Oracle == nil {
		return nil, fmt.Errorf("GenerateRaw: nil oracle")
	}
	if err := emotion.Validate(); err != nil {
		return nil, fmt.Errorf("GenerateRaw: %w", err)
	}
	if !scheme.Valid() {
		return nil, fmt.Errorf("GenerateRaw: invalid rhyme scheme %q", scheme)
	}

	raw, err := g.Oracle.Invoke(ctx, BuildPrompt(emotion, scheme))
	if err != nil {
		return nil, fmt.Errorf("GenerateRaw: oracle: %w", err)
	}
	return ParseRawPoem(raw)
}

// Generate runs the full request path: generate → enforce → assemble.
// Steps are strictly sequential; enforcement reads the shared dictionary
// without locking (it has no writers after startup).
func (g *Generator) Generate(ctx context.Context, emotion EmotionVector, scheme RhymeScheme) (Poem, error) {
	lines, err := g.GenerateRaw(ctx, emotion, scheme)
	if err != nil {
		return Poem{}, err
	}

	var groups []GroupReport
	if !g.SkipEnforce {
		if g.Lookup == nil {
			return Poem{}, fmt.Errorf("Generate: nil lookup")
		}
		enforcer := &Enforcer{Lookup: g.Lookup}
		if g.RankByEmotion {
			enforcer.Emotion = emotion
		}
		lines, groups, err = enforcer.Enforce(lines, scheme)
		if err != nil {
			return Poem{}, fmt.Errorf("Generate: %w", err)
		}
	}

	return Assemble(lines, scheme, emotion, groups), nil
}
