package poetry

import (
	"regexp"
	"strings"
)

// numberedLinePattern matches the "1. …" / "2: …" line numbering the model
// is trained to emit.
var numberedLinePattern = regexp.MustCompile(`^\s*\d+\s*[.:]\s*(.*)$`)

var blankLinePattern = regexp.MustCompile(`^\s*$`)

// boxedPattern matches the \boxed{...} wrapper some reasoning models leave
// around their final answer.
var boxedPattern = regexp.MustCompile(`(?s)\\boxed\{(.*)\}`)

// lineSplitPunctuation is where overlong lines may be broken.
var lineSplitPunctuation = regexp.MustCompile(`[,;:—–…]`)

// StripBoxed unwraps a \boxed{...} answer, leaving other text untouched.
func StripBoxed(s string) string {
	return boxedPattern.ReplaceAllString(s, "$1")
}

// RetainNumberedLines keeps only lines that carry the training format's
// line number.
func RetainNumberedLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if numberedLinePattern.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

// StripLineNumbers removes the leading "N." numbering from each line.
func StripLineNumbers(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := numberedLinePattern.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		} else {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

// RemoveBlankLines drops empty and whitespace-only lines.
func RemoveBlankLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if !blankLinePattern.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

// SplitLongLines breaks lines exceeding maxSyllables at punctuation,
// greedily packing pieces back up to the limit. Lines with no usable break
// point are kept whole.
func SplitLongLines(lines []string, maxSyllables int) []string {
	if maxSyllables <= 0 {
		return lines
	}
	var out []string
	for _, line := range lines {
		if LineSyllables(line) <= maxSyllables {
			out = append(out, line)
			continue
		}

		parts := lineSplitPunctuation.Split(line, -1)
		marks := lineSplitPunctuation.FindAllString(line, -1)
		if len(parts) < 2 {
			out = append(out, line)
			continue
		}

		var cur strings.Builder
		curSyllables := 0
		split := false
		for i, part := range parts {
			piece := strings.TrimSpace(part)
			syllables := CountSyllables(piece)
			if cur.Len() == 0 || curSyllables+syllables <= maxSyllables {
				if cur.Len() > 0 {
					cur.WriteString(" ")
				}
				cur.WriteString(piece)
				curSyllables += syllables
			} else {
				out = append(out, strings.TrimSpace(cur.String()))
				cur.Reset()
				cur.WriteString(piece)
				curSyllables = syllables
				split = true
			}
			if i < len(marks) {
				cur.WriteString(marks[i])
			}
		}
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		if !split && len(out) > 0 {
			out[len(out)-1] = line
		}
	}
	return out
}

// DropShortLastLine removes a trailing line below the syllable threshold,
// typically a truncated generation tail.
func DropShortLastLine(lines []string, threshold int) []string {
	if len(lines) == 0 {
		return lines
	}
	if LineSyllables(lines[len(lines)-1]) < threshold {
		return lines[:len(lines)-1]
	}
	return lines
}
