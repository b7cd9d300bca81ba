package poetry

import (
	"fmt"
	"strings"
)

// RhymeScheme names a fixed partition of the four line positions into rhyme
// groups. Letters at equal positions rhyme; a letter appearing once leaves
// its line unconstrained.
type RhymeScheme string

const (
	SchemeAABB RhymeScheme = "AABB"
	SchemeABAB RhymeScheme = "ABAB"
	SchemeABBA RhymeScheme = "ABBA"
	SchemeAABA RhymeScheme = "AABA"
)

// RhymeSchemes lists the supported schemes in a stable order.
var RhymeSchemes = []RhymeScheme{SchemeAABB, SchemeABAB, SchemeABBA, SchemeAABA}

// ParseRhymeScheme resolves a scheme name case-insensitively.
func ParseRhymeScheme(s string) (RhymeScheme, error) {
	name := RhymeScheme(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range RhymeSchemes {
		if name == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("ParseRhymeScheme: unknown scheme %q", s)
}

// Valid reports whether the scheme is one of the supported four.
func (s RhymeScheme) Valid() bool {
	_, err := ParseRhymeScheme(string(s))
	return err == nil
}

// Groups returns the line-index partition of the scheme, ordered by each
// letter's first occurrence. Every index 0..3 appears in exactly one group.
func (s RhymeScheme) Groups() [][]int {
	var order []rune
	byLetter := make(map[rune][]int)
	for i, letter := range string(s) {
		if _, ok := byLetter[letter]; !ok {
			order = append(order, letter)
		}
		byLetter[letter] = append(byLetter[letter], i)
	}
	groups := make([][]int, 0, len(order))
	for _, letter := range order {
		groups = append(groups, byLetter[letter])
	}
	return groups
}
