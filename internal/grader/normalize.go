package grader

import (
	"strings"

	"golang.org/x/text/width"
)

// punctReplacer unifies CJK punctuation with its ASCII equivalent so
// answers keyed in either convention compare equal. Width folding below
// covers full-width letters/digits but leaves ideographic punctuation in
// its half-width CJK form, so those are mapped explicitly.
var punctReplacer = strings.NewReplacer(
	"，", ",",
	"。", ".",
	"、", ",",
	"；", ";",
	"：", ":",
	"？", "?",
	"！", "!",
	"（", "(",
	"）", ")",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"｡", ".",
	"､", ",",
)

// Normalize prepares a value for comparison: full-width forms folded to
// ASCII, CJK punctuation unified, case folded, surrounding whitespace
// trimmed and internal whitespace collapsed to single spaces.
func Normalize(s string) string {
	s = width.Narrow.String(s)
	s = punctReplacer.Replace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// normalizeSet normalizes every value and returns the distinct non-empty
// results as a set.
func normalizeSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			set[n] = true
		}
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}
