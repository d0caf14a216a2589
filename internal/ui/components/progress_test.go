package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestPositionBar_LabelsOneBasedPosition(t *testing.T) {
	view := NewPositionBar(0, 4, 40).View()
	if !strings.Contains(view, "第 1 / 4 题") {
		t.Errorf("view %q missing position label", view)
	}
}

func TestPositionBar_ClampsPastEnd(t *testing.T) {
	// After the last question the position counter sits at Total.
	view := NewPositionBar(4, 4, 40).View()
	if !strings.Contains(view, "第 4 / 4 题") {
		t.Errorf("view %q, want label clamped to the last question", view)
	}
}

func TestPositionBar_EmptyWithoutQuestions(t *testing.T) {
	if view := NewPositionBar(0, 0, 40).View(); view != "" {
		t.Errorf("view = %q, want empty for zero total", view)
	}
}

func TestPositionBar_FillsRequestedWidth(t *testing.T) {
	view := NewPositionBar(2, 4, 40).View()
	if got := lipgloss.Width(view); got != 40 {
		t.Errorf("rendered width = %d, want 40", got)
	}
}
