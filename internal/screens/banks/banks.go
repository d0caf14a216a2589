// Package banks is a read-only inventory of the loaded question banks:
// per-course and per-chapter counts plus any files that failed to load.
package banks

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
	"github.com/nmsltll12138/pathology-quiz/internal/screen"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/layout"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/theme"
)

// BanksScreen lists the library contents. The listing can exceed the
// viewport, so it scrolls by line offset.
type BanksScreen struct {
	lib    *bank.Library
	lines  []string
	offset int
}

var _ screen.Screen = (*BanksScreen)(nil)
var _ screen.KeyHintProvider = (*BanksScreen)(nil)

// New builds the inventory listing once; the library is immutable.
func New(lib *bank.Library) *BanksScreen {
	return &BanksScreen{lib: lib, lines: buildLines(lib)}
}

func (b *BanksScreen) Init() tea.Cmd {
	return nil
}

func (b *BanksScreen) Title() string {
	return "题库浏览"
}

func (b *BanksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "滚动"},
		{Key: "Esc", Description: "返回"},
	}
}

func (b *BanksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if b.offset > 0 {
			b.offset--
		}
	case "down", "j":
		if b.offset < len(b.lines)-1 {
			b.offset++
		}
	case "g":
		b.offset = 0
	}
	return b, nil
}

func (b *BanksScreen) View(width, height int) string {
	visible := height - 2
	if visible < 1 {
		visible = 1
	}

	end := b.offset + visible
	if end > len(b.lines) {
		end = len(b.lines)
	}
	return "\n" + strings.Join(b.lines[b.offset:end], "\n")
}

func buildLines(lib *bank.Library) []string {
	var lines []string

	lines = append(lines, "  "+theme.Body.Bold(true).Render(
		fmt.Sprintf("共 %d 题，%d 门课程", lib.Len(), len(lib.Courses()))))
	lines = append(lines, "")

	for _, course := range lib.Courses() {
		courseTotal := len(lib.Filter(bank.Signature{Course: course}))
		lines = append(lines, "  "+theme.Selected.Render(
			fmt.Sprintf("%s（%d 题）", course, courseTotal)))

		for _, chapter := range lib.Chapters(course) {
			n := len(lib.Filter(bank.Signature{Course: course, Chapter: chapter}))
			lines = append(lines, "    "+theme.Body.Render(
				fmt.Sprintf("%s  %d 题", chapter, n)))
		}
		lines = append(lines, "")
	}

	if diags := lib.Diagnostics(); len(diags) > 0 {
		lines = append(lines, "  "+theme.Incorrect.Render(
			fmt.Sprintf("加载失败的文件（%d）", len(diags))))
		for _, d := range diags {
			lines = append(lines, "    "+theme.Hint.Render(
				fmt.Sprintf("%s：%v", d.File, d.Err)))
		}
	}
	return lines
}
