// Package quiz is the drilling screen: it renders the current question
// for the active filter signature and drives the session state machine
// (submit, advance, reset). All grading decisions live in the session
// and grader packages; this screen only collects input.
package quiz

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/grader"
	"github.com/nmsltll12138/pathology-quiz/internal/screen"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/components"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/layout"
)

// Submission guard warnings, surfaced above the widget.
const (
	warnPickOne  = "请先选择一个选项再提交。"
	warnPickSome = "请至少选择 1 个选项再提交。"
)

// QuizScreen drives one question at a time for the active filter.
type QuizScreen struct {
	sess *session.Session

	// cursor is the highlighted option for choice questions; -1 means
	// nothing selected yet (single choice requires an explicit pick).
	cursor  int
	checked map[int]bool
	area    components.AnswerArea
	warning string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.HeaderStatusProvider = (*QuizScreen)(nil)

// New creates the quiz screen over the session's active filter.
func New(sess *session.Session) *QuizScreen {
	q := &QuizScreen{sess: sess}
	q.resetWidgets()
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	if rec, ok := q.sess.Current(); ok && rec.Type == bank.Short {
		return q.area.Init()
	}
	return nil
}

func (q *QuizScreen) Title() string {
	return q.sess.Active().String()
}

// resetWidgets prepares fresh input state for the current question.
func (q *QuizScreen) resetWidgets() {
	q.cursor = -1
	q.checked = make(map[int]bool)
	q.area = components.NewAnswerArea("输入你的答案…", 60, 5)
	q.warning = ""
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return q.handleKey(kmsg)
	}

	// Non-key messages feed the text area while answering a short question.
	if rec, ok := q.sess.Current(); ok &&
		rec.Type == bank.Short && q.sess.Phase() == session.PhaseAnswering {
		var cmd tea.Cmd
		q.area, cmd = q.area.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch q.sess.Phase() {
	case session.PhaseAnswering:
		return q.handleAnswering(msg, key)

	case session.PhaseSubmitted:
		switch key {
		case "enter", "n", " ", "space":
			q.sess.Advance()
			q.resetWidgets()
			return q, q.Init()
		case "ctrl+r":
			q.sess.Reset()
			q.resetWidgets()
			return q, q.Init()
		}

	case session.PhaseComplete:
		switch key {
		case "r", "ctrl+r", "enter":
			q.sess.Reset()
			q.resetWidgets()
			return q, q.Init()
		}

	case session.PhaseEmpty:
		// Nothing to do here; Esc returns to the picker.
	}

	return q, nil
}

func (q *QuizScreen) handleAnswering(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	rec, ok := q.sess.Current()
	if !ok {
		return q, nil
	}

	if key == "ctrl+r" {
		q.sess.Reset()
		q.resetWidgets()
		return q, q.Init()
	}

	switch rec.Type {
	case bank.Single, bank.Multiple:
		return q.handleChoiceKey(rec, key)
	default:
		return q.handleShortKey(msg, key)
	}
}

func (q *QuizScreen) handleChoiceKey(rec bank.Record, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if q.cursor > 0 {
			q.cursor--
		} else if q.cursor < 0 {
			q.cursor = 0
		}
		return q, nil
	case "down", "j":
		if q.cursor < 0 {
			q.cursor = 0
		} else if q.cursor < len(rec.Options)-1 {
			q.cursor++
		}
		return q, nil
	case " ", "space":
		if rec.Type == bank.Multiple && q.cursor >= 0 {
			q.checked[q.cursor] = !q.checked[q.cursor]
			q.warning = ""
		}
		return q, nil
	case "enter":
		q.submit(rec)
		return q, nil
	}

	// Digit keys: single choice picks and submits, multiple toggles.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx >= len(rec.Options) {
			return q, nil
		}
		q.cursor = idx
		if rec.Type == bank.Multiple {
			q.checked[idx] = !q.checked[idx]
			q.warning = ""
		} else {
			q.submit(rec)
		}
	}
	return q, nil
}

func (q *QuizScreen) handleShortKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	if key == "ctrl+s" {
		rec, ok := q.sess.Current()
		if ok {
			q.submit(rec)
		}
		return q, nil
	}

	var cmd tea.Cmd
	q.area, cmd = q.area.Update(msg)
	return q, cmd
}

// submit builds the submission for the question type and runs it through
// the session. Guard rejections surface as a warning without mutating
// any progress state.
func (q *QuizScreen) submit(rec bank.Record) {
	var sub grader.Submission
	switch rec.Type {
	case bank.Single:
		if q.cursor >= 0 && q.cursor < len(rec.Options) {
			sub.Choice = rec.Options[q.cursor]
		}
	case bank.Multiple:
		for i, opt := range rec.Options {
			if q.checked[i] {
				sub.Choices = append(sub.Choices, opt)
			}
		}
	default:
		sub.Text = q.area.Value()
	}

	_, err := q.sess.Submit(sub)
	if err == session.ErrNoSelection {
		if rec.Type == bank.Multiple {
			q.warning = warnPickSome
		} else {
			q.warning = warnPickOne
		}
		return
	}
	if err != nil {
		return
	}
	q.warning = ""
	q.area.Blur()
}

// HeaderStatus puts the live score and position in the header.
func (q *QuizScreen) HeaderStatus() string {
	p := q.sess.Progress()
	pos := p.Position
	if pos > q.sess.Total() {
		pos = q.sess.Total()
	}
	return headerStatus(p.Score, pos, q.sess.Total())
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.sess.Phase() {
	case session.PhaseSubmitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "下一题"},
			{Key: "Ctrl+R", Description: "重置进度"},
			{Key: "Esc", Description: "更换筛选"},
		}
	case session.PhaseComplete:
		return []layout.KeyHint{
			{Key: "R", Description: "重新开始"},
			{Key: "Esc", Description: "更换筛选"},
		}
	case session.PhaseEmpty:
		return []layout.KeyHint{
			{Key: "Esc", Description: "更换筛选"},
		}
	}

	rec, _ := q.sess.Current()
	switch rec.Type {
	case bank.Multiple:
		return []layout.KeyHint{
			{Key: "Space", Description: "勾选"},
			{Key: "Enter", Description: "提交"},
			{Key: "Esc", Description: "更换筛选"},
		}
	case bank.Short:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "提交"},
			{Key: "Esc", Description: "更换筛选"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "选择"},
			{Key: "Enter", Description: "提交"},
			{Key: "Esc", Description: "更换筛选"},
		}
	}
}
