// Package session holds the per-user drilling state: one Progress per
// filter signature, the active signature, and the action handlers the
// presentation layer invokes. Everything is in-memory and synchronous;
// each action runs to completion before the next is accepted.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/grader"
)

// Phase is the state-machine position for the active signature.
type Phase int

const (
	PhaseAnswering Phase = iota // current question open for input
	PhaseSubmitted              // graded, feedback visible
	PhaseComplete               // position reached the end of the list
	PhaseEmpty                  // filter matched no questions
)

var (
	// ErrNoSelection rejects a choice submission with nothing selected.
	// No state mutates; the user is prompted to complete the input.
	ErrNoSelection = errors.New("no selection made")

	// ErrNotAnswering rejects submissions outside the Answering phase.
	ErrNotAnswering = errors.New("no open question to submit")
)

// Session is one user's drilling state across all filter signatures.
// The question bank it reads is immutable and may be shared; the Session
// itself must not be shared across users.
type Session struct {
	ID string

	lib    *bank.Library
	grader *grader.Grader

	states   map[string]*Progress
	active   bank.Signature
	filtered []bank.Record // cache of lib.Filter(active)
}

// New creates a Session over lib starting at the all/all/all filter.
func New(lib *bank.Library, g *grader.Grader) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		lib:    lib,
		grader: g,
		states: make(map[string]*Progress),
	}
	s.SelectFilter(bank.Signature{})
	return s
}

// Library returns the immutable question bank backing the session.
func (s *Session) Library() *bank.Library { return s.lib }

// Active returns the active filter signature.
func (s *Session) Active() bank.Signature { return s.active }

// Questions returns the filtered question list for the active signature,
// in bank load order.
func (s *Session) Questions() []bank.Record { return s.filtered }

// Total returns the filtered question count.
func (s *Session) Total() int { return len(s.filtered) }

// Progress returns the active signature's progress state.
func (s *Session) Progress() *Progress {
	return s.states[s.active.Key()]
}

// SelectFilter switches the active signature. State for the previous
// signature stays in the store untouched; the new signature resumes its
// stored state or starts fresh. Switching away and back restores
// position, score, and submission state exactly.
func (s *Session) SelectFilter(sig bank.Signature) {
	s.active = sig
	if _, ok := s.states[sig.Key()]; !ok {
		s.states[sig.Key()] = freshProgress()
	}
	s.filtered = s.lib.Filter(sig)
}

// Phase derives the state-machine position for the active signature.
func (s *Session) Phase() Phase {
	if len(s.filtered) == 0 {
		return PhaseEmpty
	}
	p := s.Progress()
	if p.Position >= len(s.filtered) {
		return PhaseComplete
	}
	if p.Submitted {
		return PhaseSubmitted
	}
	return PhaseAnswering
}

// Current returns the active question, if the phase has one.
func (s *Session) Current() (bank.Record, bool) {
	p := s.Progress()
	if len(s.filtered) == 0 || p.Position >= len(s.filtered) {
		return bank.Record{}, false
	}
	return s.filtered[p.Position], true
}

// Submit grades the submission against the current question and moves
// the signature to Submitted. A choice submission with no selection is
// rejected before grading and mutates nothing. An Ungraded outcome (no
// stored answer) leaves the score unchanged.
func (s *Session) Submit(sub grader.Submission) (grader.Result, error) {
	if s.Phase() != PhaseAnswering {
		return grader.Ungraded, ErrNotAnswering
	}
	q, _ := s.Current()

	switch q.Type {
	case bank.Single:
		if sub.Choice == "" {
			return grader.Ungraded, ErrNoSelection
		}
	case bank.Multiple:
		if len(sub.Choices) == 0 {
			return grader.Ungraded, ErrNoSelection
		}
	}

	res := s.grader.Grade(q.Type, sub, q.Answer)

	p := s.Progress()
	p.Submitted = true
	p.LastResult = res
	if res == grader.Correct {
		p.Score++
	}
	return res, nil
}

// Advance moves to the next question, clearing the submission state.
// Only meaningful after a submission; a no-op otherwise.
func (s *Session) Advance() {
	if s.Phase() != PhaseSubmitted {
		return
	}
	p := s.Progress()
	p.Position++
	p.Submitted = false
	p.LastResult = grader.Ungraded
}

// Reset force-reinitializes the active signature's progress, whatever
// state it is in. This is the only way out of Complete.
func (s *Session) Reset() {
	s.states[s.active.Key()] = freshProgress()
}
