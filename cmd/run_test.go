package cmd

import (
	"strings"
	"testing"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/grader"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
)

func TestSessionSummary_NamesTheSession(t *testing.T) {
	lib := bank.NewLibrary([]bank.Record{
		{Course: "病理学", Chapter: "第一章", Type: bank.Short, Prompt: "q",
			Answer: bank.Answer{Kind: bank.AnswerSingle, Text: "a"}},
	})
	sess := session.New(lib, grader.New(grader.DefaultConfig()))

	got := sessionSummary(sess)
	if sess.ID == "" {
		t.Fatal("expected a non-empty session ID")
	}
	if !strings.Contains(got, sess.ID) {
		t.Errorf("summary %q does not name session %q", got, sess.ID)
	}
}
