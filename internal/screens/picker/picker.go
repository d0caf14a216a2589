// Package picker selects the drilling filter: course, then chapter, then
// question type, each level offering an "all" entry. The chosen filter
// signature addresses an independent progress slot in the session.
package picker

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/router"
	"github.com/nmsltll12138/pathology-quiz/internal/screen"
	"github.com/nmsltll12138/pathology-quiz/internal/screens/quiz"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/components"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/layout"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/theme"
)

type stage int

const (
	stageCourse stage = iota
	stageChapter
	stageType
)

// PickerScreen builds a filter signature one facet at a time.
type PickerScreen struct {
	sess  *session.Session
	stage stage
	sig   bank.Signature
	menu  components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker at the course stage.
func New(sess *session.Session) *PickerScreen {
	p := &PickerScreen{sess: sess}
	p.menu = p.courseMenu()
	return p
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "选择范围"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Enter", Description: "确定"},
		{Key: "Backspace", Description: "上一级"},
		{Key: "Esc", Description: "返回"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "backspace" {
		p.back()
		return p, nil
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	var heading string
	switch p.stage {
	case stageCourse:
		heading = "选择课程"
	case stageChapter:
		heading = fmt.Sprintf("%s：选择章节", p.sig.Course)
		if p.sig.Course == "" {
			heading = "全部课程：选择章节"
		}
	case stageType:
		heading = "选择题型"
	}

	title := theme.Title.Width(width).Render(heading)
	crumb := theme.Subtitle.Width(width).Render(p.sig.String())
	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, p.menu.View())

	return "\n\n" + title + "\n" + crumb + "\n\n" + menu
}

// back returns to the previous stage, clearing the facet chosen there.
func (p *PickerScreen) back() {
	switch p.stage {
	case stageChapter:
		p.stage = stageCourse
		p.sig.Course = ""
		p.menu = p.courseMenu()
	case stageType:
		p.stage = stageChapter
		p.sig.Chapter = ""
		p.menu = p.chapterMenu()
	}
}

func (p *PickerScreen) courseMenu() components.Menu {
	lib := p.sess.Library()

	items := []components.MenuItem{p.courseItem("")}
	for _, course := range lib.Courses() {
		items = append(items, p.courseItem(course))
	}
	return components.NewMenu(items)
}

func (p *PickerScreen) courseItem(course string) components.MenuItem {
	label := course
	if course == "" {
		label = "全部课程"
	}
	return components.MenuItem{Label: label, Action: func() tea.Cmd {
		p.sig.Course = course
		p.stage = stageChapter
		p.menu = p.chapterMenu()
		return nil
	}}
}

func (p *PickerScreen) chapterMenu() components.Menu {
	lib := p.sess.Library()

	items := []components.MenuItem{p.chapterItem("")}
	for _, chapter := range lib.Chapters(p.sig.Course) {
		items = append(items, p.chapterItem(chapter))
	}
	return components.NewMenu(items)
}

func (p *PickerScreen) chapterItem(chapter string) components.MenuItem {
	label := chapter
	if chapter == "" {
		label = "全部章节"
	}
	return components.MenuItem{Label: label, Action: func() tea.Cmd {
		p.sig.Chapter = chapter
		p.stage = stageType
		p.menu = p.typeMenu()
		return nil
	}}
}

func (p *PickerScreen) typeMenu() components.Menu {
	lib := p.sess.Library()

	items := []components.MenuItem{p.typeItem("")}
	for _, t := range lib.Types(p.sig.Course, p.sig.Chapter) {
		items = append(items, p.typeItem(t))
	}
	return components.NewMenu(items)
}

func (p *PickerScreen) typeItem(t bank.QType) components.MenuItem {
	label := "全部题型"
	if t != "" {
		label = t.Label()
	}
	return components.MenuItem{Label: label, Action: func() tea.Cmd {
		p.sig.Type = t
		p.sess.SelectFilter(p.sig)
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: quiz.New(p.sess)}
		}
	}}
}
