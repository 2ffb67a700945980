package components

import (
	"github.com/glp360/riskscore/internal/ui/theme"
)

// Button is a styled button. Focused buttons render highlighted; key
// handling is left to the owning screen.
type Button struct {
	Label   string
	Focused bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Focused {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
