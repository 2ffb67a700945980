package contact

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/router"
	"github.com/glp360/riskscore/internal/screen"
	"github.com/glp360/riskscore/internal/ui/components"
	"github.com/glp360/riskscore/internal/ui/layout"
	"github.com/glp360/riskscore/internal/ui/theme"
	"github.com/glp360/riskscore/internal/wizard"
)

// IncompleteWarning is shown when name or phone is missing.
const IncompleteWarning = "Please fill in your name and phone number"

const (
	consentText = "I want your team to contact me to discuss my personalized plan"
	nameLimit   = 80
	phoneLimit  = 24
)

type field int

const (
	fieldName field = iota
	fieldPhone
	fieldConsent
	fieldSubmit
	fieldCount
)

// ContactScreen collects the respondent's contact details and finishes the
// wizard.
type ContactScreen struct {
	wizard      *wizard.Wizard
	toQuestions func() screen.Screen
	toResult    func() screen.Screen

	name    components.TextInput
	phone   components.TextInput
	focus   field
	warning string
}

var _ screen.Screen = (*ContactScreen)(nil)
var _ screen.KeyHintProvider = (*ContactScreen)(nil)

// New creates a ContactScreen. toQuestions builds the screen to go back to
// and toResult the one shown once the wizard finishes.
func New(w *wizard.Wizard, toQuestions, toResult func() screen.Screen) *ContactScreen {
	c := w.Contact()

	name := components.NewTextInput("Full Name", "Enter your full name", nameLimit)
	name.SetValue(c.Name)
	phone := components.NewTextInput("Phone Number", "Enter your phone number", phoneLimit)
	phone.Allow = components.PhoneChars
	phone.SetValue(c.Phone)

	return &ContactScreen{
		wizard:      w,
		toQuestions: toQuestions,
		toResult:    toResult,
		name:        name,
		phone:       phone,
	}
}

func (s *ContactScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *ContactScreen) Title() string {
	return "Almost Done"
}

func (s *ContactScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Previous"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ContactScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.updateInput(msg)
	}

	switch kmsg.String() {
	case "esc":
		s.save()
		if s.wizard.Previous() {
			prev := s.toQuestions()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: prev} }
		}
		return s, nil
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		switch s.focus {
		case fieldName, fieldPhone:
			return s, s.setFocus(s.focus + 1)
		case fieldConsent:
			s.toggleConsent()
			return s, nil
		default:
			return s, s.submit()
		}
	case "space", " ":
		if s.focus == fieldConsent {
			s.toggleConsent()
			return s, nil
		}
	}

	return s, s.updateInput(msg)
}

func (s *ContactScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldPhone:
		s.phone, cmd = s.phone.Update(msg)
	}
	if s.warning != "" && strings.TrimSpace(s.name.Value()) != "" && strings.TrimSpace(s.phone.Value()) != "" {
		s.warning = ""
	}
	return cmd
}

func (s *ContactScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.phone.Blur()
	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldPhone:
		return s.phone.Focus()
	}
	return nil
}

func (s *ContactScreen) toggleConsent() {
	s.wizard.SetContactRequested(!s.wizard.Contact().ContactRequested)
}

func (s *ContactScreen) save() {
	s.wizard.SetName(s.name.Value())
	s.wizard.SetPhone(s.phone.Value())
}

func (s *ContactScreen) submit() tea.Cmd {
	s.save()
	_, err := s.wizard.Finish()
	if errors.Is(err, wizard.ErrContactIncomplete) {
		s.warning = IncompleteWarning
		first := fieldCount
		if strings.TrimSpace(s.phone.Value()) == "" {
			s.phone.MarkInvalid()
			first = fieldPhone
		}
		if strings.TrimSpace(s.name.Value()) == "" {
			s.name.MarkInvalid()
			first = fieldName
		}
		if first != fieldCount {
			return s.setFocus(first)
		}
		return nil
	}
	if err != nil {
		return nil
	}

	next := s.toResult()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ContactScreen) View(width, height int) string {
	contentWidth := min(width-4, 64)
	var b strings.Builder

	b.WriteString(theme.Title.Render("Where should we send your plan?"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Your results are ready once you share your contact details."))
	b.WriteString("\n\n")

	b.WriteString(s.name.View())
	b.WriteString("\n\n")
	b.WriteString(s.phone.View())
	b.WriteString("\n\n")

	mark := "[ ]"
	if s.wizard.Contact().ContactRequested {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("[x]")
	}
	consentStyle := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "  "
	if s.focus == fieldConsent {
		consentStyle = theme.Selected
		prefix = theme.Cursor.Render("▸ ")
	}
	b.WriteString(prefix + consentStyle.Width(contentWidth-2).Render(mark+" "+consentText))
	b.WriteString("\n\n")

	if s.warning != "" {
		b.WriteString(theme.Warning.Render(s.warning))
		b.WriteString("\n\n")
	}

	back := components.NewButton("← Previous")
	submit := components.NewButton("Get My Results")
	submit.Focused = s.focus == fieldSubmit
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, back.View(), " ", submit.View()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		theme.Card.Width(contentWidth).Render(b.String()))
}
