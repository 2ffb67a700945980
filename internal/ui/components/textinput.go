package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app styling and an optional
// per-character filter.
type TextInput struct {
	Model textinput.Model
	Label string

	// Allow, when set, rejects typed characters it returns false for.
	Allow func(r rune) bool

	invalid bool
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// PhoneChars allows digits and common phone punctuation.
func PhoneChars(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		return true
	}
	return false
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Allow != nil {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if !t.Allow(r) {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.invalid && t.Model.Value() != "" {
		t.invalid = false
	}
	return t, cmd
}

// View renders the label and the input.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		labelStyle = theme.Selected
	}
	view := labelStyle.Render(t.Label) + "\n" + t.Model.View()
	if t.invalid {
		view += " " + theme.Warning.Render("required")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// MarkInvalid flags the input as missing a required value until the user
// types into it.
func (t *TextInput) MarkInvalid() {
	t.invalid = true
}
