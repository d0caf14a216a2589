// Package home is the entry screen: start drilling, browse the loaded
// banks, or quit.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/router"
	"github.com/nmsltll12138/pathology-quiz/internal/screen"
	"github.com/nmsltll12138/pathology-quiz/internal/screens/banks"
	"github.com/nmsltll12138/pathology-quiz/internal/screens/picker"
	"github.com/nmsltll12138/pathology-quiz/internal/session"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/components"
	"github.com/nmsltll12138/pathology-quiz/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen over a shared session.
func New(sess *session.Session) *HomeScreen {
	items := []components.MenuItem{
		{Label: "开始刷题", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: picker.New(sess)}
			}
		}},
		{Label: "题库浏览", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: banks.New(sess.Library())}
			}
		}},
		{Label: "退出", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		sess: sess,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "主页"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	lib := h.sess.Library()

	title := theme.Title.Width(width).Render("刷 题")
	subtitle := theme.Subtitle.Width(width).Render(
		fmt.Sprintf("已加载 %d 门课程，共 %d 题", len(lib.Courses()), lib.Len()))

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())

	body := "\n\n" + title + "\n" + subtitle + "\n\n\n" + menu

	if n := len(lib.Diagnostics()); n > 0 {
		note := theme.Hint.Width(width).Align(lipgloss.Center).Render(
			fmt.Sprintf("注意：%d 个题库文件加载失败，详见题库浏览", n))
		body += "\n\n" + note
	}

	return body
}
