package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// AnswerArea wraps bubbles/textarea for free-text answers.
type AnswerArea struct {
	Model textarea.Model
}

// NewAnswerArea creates a focused multi-line answer input.
func NewAnswerArea(placeholder string, width, height int) AnswerArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return AnswerArea{Model: ta}
}

// Init returns the initial command.
func (a AnswerArea) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages.
func (a AnswerArea) Update(msg tea.Msg) (AnswerArea, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the text area.
func (a AnswerArea) View() string {
	return a.Model.View()
}

// Value returns the current input value.
func (a AnswerArea) Value() string {
	return a.Model.Value()
}

// Blur disables further editing (input closed after submission).
func (a *AnswerArea) Blur() {
	a.Model.Blur()
}
