// Package grader compares submitted answers against stored answers.
//
// Grading is pure and idempotent: the same (type, submission, stored
// answer) triple always yields the same Result. A missing stored answer
// is never an error; it grades as Ungraded and must not affect scores.
package grader

import (
	"strings"
	"unicode/utf8"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
)

// Result is the tri-state grading outcome.
type Result int

const (
	Ungraded Result = iota // no stored answer to compare against
	Correct
	Incorrect
)

func (r Result) String() string {
	switch r {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	}
	return "ungraded"
}

// Config tunes free-text grading. The keyword coverage threshold is a
// calibration heuristic, not design intent, so it stays configurable.
type Config struct {
	// KeywordThreshold is the fraction of keyword fragments that must
	// occur in the submitted text for a non-exact match to count as
	// correct.
	KeywordThreshold float64

	// MinFragmentLen is the minimum rune length for a stored-answer
	// fragment to count as a keyword.
	MinFragmentLen int
}

// DefaultConfig returns the stock free-text tuning.
func DefaultConfig() Config {
	return Config{
		KeywordThreshold: 0.8,
		MinFragmentLen:   2,
	}
}

// Submission carries the user's answer in the shape of the question type.
type Submission struct {
	Choice  string   // single choice
	Choices []string // multiple choice
	Text    string   // short answer
}

// Grader grades submissions. Safe for concurrent use; it holds only
// configuration.
type Grader struct {
	cfg Config
}

// New creates a Grader with the given configuration. Zero-value fields
// fall back to defaults.
func New(cfg Config) *Grader {
	def := DefaultConfig()
	if cfg.KeywordThreshold <= 0 || cfg.KeywordThreshold > 1 {
		cfg.KeywordThreshold = def.KeywordThreshold
	}
	if cfg.MinFragmentLen <= 0 {
		cfg.MinFragmentLen = def.MinFragmentLen
	}
	return &Grader{cfg: cfg}
}

// Grade dispatches on question type.
func (g *Grader) Grade(t bank.QType, sub Submission, stored bank.Answer) Result {
	switch t {
	case bank.Single:
		return g.GradeSingle(sub.Choice, stored)
	case bank.Multiple:
		return g.GradeMultiple(sub.Choices, stored)
	default:
		return g.GradeShort(sub.Text, stored)
	}
}

// GradeSingle grades an exact-match choice.
func (g *Grader) GradeSingle(choice string, stored bank.Answer) Result {
	storedText := singleText(stored)
	if Normalize(storedText) == "" {
		return Ungraded
	}
	if Normalize(choice) == Normalize(storedText) {
		return Correct
	}
	return Incorrect
}

// GradeMultiple grades a choice set by set equality, order-independent.
// A stored answer that is itself a delimited string or option-letter run
// splits into its set first.
func (g *Grader) GradeMultiple(choices []string, stored bank.Answer) Result {
	var storedSet []string
	switch stored.Kind {
	case bank.AnswerMultiple:
		storedSet = stored.Set
	case bank.AnswerSingle:
		storedSet = bank.SplitList(stored.Text)
	}

	want := normalizeSet(storedSet)
	if len(want) == 0 {
		return Ungraded
	}
	if setsEqual(normalizeSet(choices), want) {
		return Correct
	}
	return Incorrect
}

// GradeShort grades free text: exact normalized match first, then
// keyword-fragment coverage of the stored answer.
func (g *Grader) GradeShort(text string, stored bank.Answer) Result {
	storedText := singleText(stored)
	normStored := Normalize(storedText)
	if normStored == "" || isNoAnswerMarker(normStored) {
		return Ungraded
	}

	normUser := Normalize(text)
	if normUser == "" {
		return Incorrect
	}
	if normUser == normStored {
		return Correct
	}

	frags := g.keywordFragments(storedText)
	if len(frags) == 0 {
		return Incorrect
	}
	hits := 0
	for _, f := range frags {
		if strings.Contains(normUser, f) {
			hits++
		}
	}
	if float64(hits)/float64(len(frags)) >= g.cfg.KeywordThreshold {
		return Correct
	}
	return Incorrect
}

// keywordFragments splits a stored answer into the normalized fragments
// used for coverage grading, discarding short and placeholder fragments.
func (g *Grader) keywordFragments(stored string) []string {
	var frags []string
	for _, part := range bank.SplitList(stored) {
		n := Normalize(part)
		if n == "" || isNoAnswerMarker(n) {
			continue
		}
		if utf8.RuneCountInString(n) < g.cfg.MinFragmentLen {
			continue
		}
		frags = append(frags, n)
	}
	return frags
}

// noAnswerMarkers are the normalized placeholder strings bank authors
// use where no model answer exists.
var noAnswerMarkers = map[string]bool{
	"暂无答案":   true,
	"暂无":     true,
	"略":      true,
	"无":      true,
	"(暂无答案)": true,
}

func isNoAnswerMarker(norm string) bool {
	return noAnswerMarkers[norm]
}

// singleText flattens an Answer into one comparable string.
func singleText(a bank.Answer) string {
	switch a.Kind {
	case bank.AnswerSingle:
		return a.Text
	case bank.AnswerMultiple:
		if len(a.Set) == 1 {
			return a.Set[0]
		}
		return strings.Join(a.Set, "；")
	}
	return ""
}
