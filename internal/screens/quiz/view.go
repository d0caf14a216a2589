package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/grader"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/components"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/theme"
)

func headerStatus(score, pos, total int) string {
	return fmt.Sprintf("得分 %d  进度 %d/%d", score, pos, total)
}

func (q *QuizScreen) View(width, height int) string {
	switch q.sess.Phase() {
	case session.PhaseEmpty:
		return q.viewEmpty(width)
	case session.PhaseComplete:
		return q.viewComplete(width)
	case session.PhaseSubmitted:
		return q.viewSubmitted(width)
	default:
		return q.viewAnswering(width)
	}
}

func (q *QuizScreen) viewEmpty(width int) string {
	msg := theme.Subtitle.Width(width).Render("当前筛选下没有题目")
	hint := theme.Hint.Width(width).Align(lipgloss.Center).
		Render("按 Esc 返回并更换筛选条件")
	return "\n\n\n" + msg + "\n\n" + hint
}

func (q *QuizScreen) viewComplete(width int) string {
	p := q.sess.Progress()
	total := q.sess.Total()

	title := theme.Title.Width(width).Render("本轮完成！")
	score := theme.Body.Render(fmt.Sprintf("最终得分：%d / %d", p.Score, total))
	if p.Score == total {
		score = theme.Correct.Render(fmt.Sprintf("最终得分：%d / %d，全部答对！", p.Score, total))
	}
	hint := theme.Hint.Render("按 R 重新开始本组，或按 Esc 更换筛选")

	body := lipgloss.JoinVertical(lipgloss.Center, score, "", hint)
	return "\n\n\n" + title + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (q *QuizScreen) viewAnswering(width int) string {
	rec, ok := q.sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(q.renderProgress(width))
	b.WriteString("\n\n")
	b.WriteString(q.renderQuestion(rec, width))
	b.WriteString("\n\n")

	switch rec.Type {
	case bank.Single:
		b.WriteString(q.renderChoices(rec, false))
	case bank.Multiple:
		b.WriteString(q.renderChoices(rec, true))
	default:
		b.WriteString(q.area.View())
	}

	if q.warning != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Ungraded.Render(q.warning))
	}
	return b.String()
}

func (q *QuizScreen) viewSubmitted(width int) string {
	rec, ok := q.sess.Current()
	if !ok {
		return ""
	}
	p := q.sess.Progress()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(q.renderProgress(width))
	b.WriteString("\n\n")
	b.WriteString(q.renderQuestion(rec, width))
	b.WriteString("\n\n")
	b.WriteString(q.renderVerdict(p.LastResult, rec))
	if rec.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("解析：") + theme.Body.Render(rec.Explanation))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("按 Enter 进入下一题"))
	return b.String()
}

func (q *QuizScreen) renderProgress(width int) string {
	barWidth := width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	bar := components.NewPositionBar(q.sess.Progress().Position, q.sess.Total(), barWidth)
	return "  " + bar.View()
}

func (q *QuizScreen) renderQuestion(rec bank.Record, width int) string {
	meta := theme.Hint.Render(
		fmt.Sprintf("%s · %s · %s", rec.Course, rec.Chapter, rec.Type.Label()))
	prompt := theme.Body.Bold(true).Width(width - 4).Render(rec.Prompt)
	return "  " + meta + "\n\n  " + prompt
}

// renderChoices lists the options with a cursor; multiple choice adds
// check marks for toggled entries.
func (q *QuizScreen) renderChoices(rec bank.Record, multi bool) string {
	var b strings.Builder
	for i, opt := range rec.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if multi {
			mark := "[ ]"
			if q.checked[i] {
				mark = "[x]"
			}
			line = mark + " " + line
		}

		if i == q.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		if i < len(rec.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (q *QuizScreen) renderVerdict(res grader.Result, rec bank.Record) string {
	switch res {
	case grader.Correct:
		return "  " + theme.Correct.Render("回答正确！")
	case grader.Incorrect:
		return "  " + theme.Incorrect.Render("回答错误。") + "\n\n  " +
			theme.Body.Render("参考答案："+answerText(rec.Answer))
	default:
		return "  " + theme.Ungraded.Render("本题暂无标准答案，未计分。")
	}
}

// answerText flattens a stored answer for display.
func answerText(a bank.Answer) string {
	switch a.Kind {
	case bank.AnswerSingle:
		return a.Text
	case bank.AnswerMultiple:
		return strings.Join(a.Set, "、")
	default:
		return "（暂无）"
	}
}
