package session

import "github.com/nmsltll12138/pathology-quiz/internal/grader"

// Progress is the resumable state of one filter signature.
type Progress struct {
	// Position is the index of the current question in the filtered list.
	Position int

	// Score counts correct answers since the last reset.
	Score int

	// Submitted is true while feedback for the current question is
	// showing; input for the question is closed.
	Submitted bool

	// LastResult is the grading outcome of the most recent submission.
	// Ungraded until something has been submitted.
	LastResult grader.Result
}

// freshProgress returns the initial state for a newly visited signature.
func freshProgress() *Progress {
	return &Progress{}
}
