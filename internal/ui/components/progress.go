package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nmsltll12138/pathology-quiz/internal/ui/theme"
)

// PositionBar shows how far through the filtered question list the user
// is: a "第 N / M 题" label followed by a fill bar.
type PositionBar struct {
	Current int // zero-based position in the list
	Total   int
	Width   int
}

// NewPositionBar creates a bar for the current position.
func NewPositionBar(current, total, width int) PositionBar {
	return PositionBar{Current: current, Total: total, Width: width}
}

// View renders the labelled bar. Position is clamped to the list bounds
// so the completed state renders a full bar.
func (p PositionBar) View() string {
	if p.Total <= 0 {
		return ""
	}

	shown := p.Current + 1
	if shown > p.Total {
		shown = p.Total
	}
	label := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("第 %d / %d 题", shown, p.Total)) + "  "

	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * p.Current / p.Total
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().
			Background(theme.Border).
			Render(strings.Repeat(" ", barWidth-filled))

	return label + bar
}
