package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/grader"
	"github.com/nmsltll12138/pathology-quiz/internal/screen"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testRecords() []bank.Record {
	return []bank.Record{
		{
			Course: "病理学", Chapter: "第一章", Type: bank.Single,
			Prompt:  "细胞水肿最常见于哪种器官？",
			Options: []string{"肝脏", "皮肤", "骨骼"},
			Answer:  bank.Answer{Kind: bank.AnswerSingle, Text: "肝脏"},
		},
		{
			Course: "病理学", Chapter: "第一章", Type: bank.Multiple,
			Prompt:  "下列哪些属于适应性改变？",
			Options: []string{"萎缩", "肥大", "坏死"},
			Answer:  bank.Answer{Kind: bank.AnswerMultiple, Set: []string{"萎缩", "肥大"}},
		},
		{
			Course: "病理学", Chapter: "第二章", Type: bank.Short,
			Prompt:      "简述肝脏的主要功能。",
			Answer:      bank.Answer{Kind: bank.AnswerSingle, Text: "合成蛋白质"},
			Explanation: "肝细胞承担合成与分泌。",
		},
	}
}

func testQuiz(sig bank.Signature) (*QuizScreen, *session.Session) {
	lib := bank.NewLibrary(testRecords())
	sess := session.New(lib, grader.New(grader.DefaultConfig()))
	sess.SelectFilter(sig)
	return New(sess), sess
}

func TestQuizScreen_Title_RendersFilter(t *testing.T) {
	q, _ := testQuiz(bank.Signature{Course: "病理学"})
	if !strings.Contains(q.Title(), "病理学") {
		t.Errorf("Title = %q, want course name in it", q.Title())
	}
}

func TestQuizScreen_SingleChoice_RequiresSelection(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Single})

	var scr screen.Screen = q
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	qq := scr.(*QuizScreen)

	if sess.Phase() != session.PhaseAnswering {
		t.Fatalf("phase = %v, want still answering", sess.Phase())
	}
	if qq.warning == "" {
		t.Error("expected a warning after submitting with no selection")
	}
	if sess.Progress().Score != 0 {
		t.Errorf("score = %d, want 0", sess.Progress().Score)
	}
}

func TestQuizScreen_SingleChoice_CursorSubmit(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Single})

	var scr screen.Screen = q
	scr, _ = scr.Update(specialKey(tea.KeyDown)) // highlight first option
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	if sess.Phase() != session.PhaseSubmitted {
		t.Fatalf("phase = %v, want submitted", sess.Phase())
	}
	if sess.Progress().LastResult != grader.Correct {
		t.Errorf("result = %v, want correct", sess.Progress().LastResult)
	}
	if sess.Progress().Score != 1 {
		t.Errorf("score = %d, want 1", sess.Progress().Score)
	}
	_ = scr
}

func TestQuizScreen_SingleChoice_DigitSubmits(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Single})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('2')) // 皮肤, wrong

	if sess.Phase() != session.PhaseSubmitted {
		t.Fatalf("phase = %v, want submitted", sess.Phase())
	}
	if sess.Progress().LastResult != grader.Incorrect {
		t.Errorf("result = %v, want incorrect", sess.Progress().LastResult)
	}
	if sess.Progress().Score != 0 {
		t.Errorf("score = %d, want 0", sess.Progress().Score)
	}
	_ = scr
}

func TestQuizScreen_MultipleChoice_ToggleAndSubmit(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Multiple})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('1'))
	scr, _ = scr.Update(keyPress('2'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	if sess.Phase() != session.PhaseSubmitted {
		t.Fatalf("phase = %v, want submitted", sess.Phase())
	}
	if sess.Progress().LastResult != grader.Correct {
		t.Errorf("result = %v, want correct", sess.Progress().LastResult)
	}
	_ = scr
}

func TestQuizScreen_MultipleChoice_SpaceToggles(t *testing.T) {
	q, _ := testQuiz(bank.Signature{Type: bank.Multiple})

	var scr screen.Screen = q
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(keyPress(' '))
	qq := scr.(*QuizScreen)
	if !qq.checked[0] {
		t.Fatal("expected first option checked after space")
	}

	scr, _ = qq.Update(keyPress(' '))
	qq = scr.(*QuizScreen)
	if qq.checked[0] {
		t.Error("expected first option unchecked after second space")
	}
}

func TestQuizScreen_MultipleChoice_RequiresSelection(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Multiple})

	var scr screen.Screen = q
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	qq := scr.(*QuizScreen)

	if sess.Phase() != session.PhaseAnswering {
		t.Fatalf("phase = %v, want still answering", sess.Phase())
	}
	if qq.warning == "" {
		t.Error("expected a warning after submitting with nothing checked")
	}
}

func TestQuizScreen_ShortAnswer_CtrlSSubmits(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Short})

	q.area.Model.SetValue("合成蛋白质")

	var scr screen.Screen = q
	scr, _ = scr.Update(ctrlKey('s'))

	if sess.Phase() != session.PhaseSubmitted {
		t.Fatalf("phase = %v, want submitted", sess.Phase())
	}
	if sess.Progress().LastResult != grader.Correct {
		t.Errorf("result = %v, want correct", sess.Progress().LastResult)
	}
	_ = scr
}

func TestQuizScreen_ShortAnswer_TypingFeedsArea(t *testing.T) {
	q, _ := testQuiz(bank.Signature{Type: bank.Short})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('x'))
	qq := scr.(*QuizScreen)
	if qq.area.Value() != "x" {
		t.Errorf("area value = %q, want %q", qq.area.Value(), "x")
	}
}

func TestQuizScreen_AdvanceClearsWidgets(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Course: "病理学", Chapter: "第一章"})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('1')) // single choice, correct
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	qq := scr.(*QuizScreen)

	if sess.Phase() != session.PhaseAnswering {
		t.Fatalf("phase = %v, want answering next question", sess.Phase())
	}
	if qq.cursor != -1 || len(qq.checked) != 0 {
		t.Error("expected widget state cleared after advance")
	}
	if sess.Progress().Position != 1 {
		t.Errorf("position = %d, want 1", sess.Progress().Position)
	}
}

func TestQuizScreen_CompleteAndRestart(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Type: bank.Single})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('1'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	if sess.Phase() != session.PhaseComplete {
		t.Fatalf("phase = %v, want complete after last question", sess.Phase())
	}
	view := scr.View(80, 24)
	if !strings.Contains(view, "本轮完成") {
		t.Error("expected completion summary in view")
	}

	scr, _ = scr.Update(keyPress('r'))
	if sess.Phase() != session.PhaseAnswering {
		t.Fatalf("phase = %v, want answering after restart", sess.Phase())
	}
	if sess.Progress().Score != 0 {
		t.Errorf("score = %d, want 0 after restart", sess.Progress().Score)
	}
	_ = scr
}

func TestQuizScreen_ResetDuringAnswering(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Course: "病理学", Chapter: "第一章"})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('1'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter)) // advance to question 2
	scr, _ = scr.Update(ctrlKey('r'))

	if sess.Progress().Position != 0 || sess.Progress().Score != 0 {
		t.Errorf("progress = %+v, want fresh after reset", *sess.Progress())
	}
	_ = scr
}

func TestQuizScreen_EmptyFilter(t *testing.T) {
	q, sess := testQuiz(bank.Signature{Course: "不存在的课程"})

	if sess.Phase() != session.PhaseEmpty {
		t.Fatalf("phase = %v, want empty", sess.Phase())
	}
	view := q.View(80, 24)
	if !strings.Contains(view, "没有题目") {
		t.Error("expected empty-filter message in view")
	}
}

func TestQuizScreen_HeaderStatus(t *testing.T) {
	q, _ := testQuiz(bank.Signature{Type: bank.Single})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('1'))
	qq := scr.(*QuizScreen)

	status := qq.HeaderStatus()
	if !strings.Contains(status, "得分 1") {
		t.Errorf("status = %q, want score 1 in it", status)
	}
}

func TestQuizScreen_FeedbackShowsAnswerWhenWrong(t *testing.T) {
	q, _ := testQuiz(bank.Signature{Type: bank.Single})

	var scr screen.Screen = q
	scr, _ = scr.Update(keyPress('2'))

	view := scr.View(80, 24)
	if !strings.Contains(view, "参考答案") {
		t.Error("expected stored answer shown after wrong submission")
	}
	if !strings.Contains(view, "肝脏") {
		t.Error("expected answer text in feedback view")
	}
}
