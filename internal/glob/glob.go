// Package glob implements case-insensitive matching of file names against
// patterns where '*' stands for zero or more characters. No other
// metacharacters exist; every other rune matches itself.
package glob

import (
	"golang.org/x/text/cases"
)

const wildcard = '*'

type scanState int

const (
	matchLiteral scanState = iota
	matchWildcard
	matchingRun
)

// Pattern is a compiled, case-folded wildcard pattern.
type Pattern struct {
	source string
	folded []rune
}

// Compile case-folds pattern. Compiling never fails.
func Compile(pattern string) Pattern {
	return Pattern{source: pattern, folded: fold(pattern)}
}

// CompileAll compiles every pattern in order.
func CompileAll(patterns []string) []Pattern {
	ret := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		ret = append(ret, Compile(p))
	}
	return ret
}

// String returns the pattern as it was given to Compile.
func (p Pattern) String() string {
	return p.source
}

// Match reports whether text matches the pattern. An empty text never
// matches, not even the pattern "*".
func (p Pattern) Match(text string) bool {
	return matchFolded(p.folded, fold(text))
}

// Match is shorthand for Compile(pattern).Match(text).
func Match(pattern, text string) bool {
	return Compile(pattern).Match(text)
}

// MatchAny reports whether any of patterns matches text.
func MatchAny(patterns []Pattern, text string) bool {
	if len(patterns) == 0 {
		return false
	}
	folded := fold(text)
	for _, p := range patterns {
		if matchFolded(p.folded, folded) {
			return true
		}
	}
	return false
}

func fold(s string) []rune {
	// cases.Caser carries state, so a fresh one per call keeps this safe for
	// concurrent use.
	return []rune(cases.Fold().String(s))
}

func matchFolded(pattern, text []rune) bool {
	if len(text) == 0 {
		return false
	}

	state := matchLiteral
	pi, ti := 0, 0
	// resume is the pattern position right after the latest run of '*',
	// attempt the text position where the current run attempt began.
	resume, attempt := 0, 0

	for {
		switch state {
		case matchLiteral:
			if pi == len(pattern) {
				return ti == len(text)
			}
			if pattern[pi] == wildcard {
				state = matchWildcard
				continue
			}
			if ti == len(text) || pattern[pi] != text[ti] {
				return false
			}
			pi++
			ti++

		case matchWildcard:
			for pi < len(pattern) && pattern[pi] == wildcard {
				pi++
			}
			if pi == len(pattern) {
				return true
			}
			resume = pi
			for ti < len(text) && text[ti] != pattern[resume] {
				ti++
			}
			if ti == len(text) {
				return false
			}
			attempt = ti
			pi++
			ti++
			state = matchingRun

		case matchingRun:
			if pi < len(pattern) && pattern[pi] == wildcard {
				state = matchWildcard
				continue
			}
			if pi == len(pattern) && ti == len(text) {
				return true
			}
			if pi < len(pattern) && ti < len(text) && pattern[pi] == text[ti] {
				pi++
				ti++
				continue
			}
			// Mismatch, or one side ran out first: retry the run one text
			// position after the previous attempt.
			pi = resume
			ti = attempt + 1
			state = matchWildcard
		}
	}
}
