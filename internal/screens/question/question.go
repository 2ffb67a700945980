package question

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/router"
	"github.com/glp360/riskscore/internal/screen"
	"github.com/glp360/riskscore/internal/ui/components"
	"github.com/glp360/riskscore/internal/ui/layout"
	"github.com/glp360/riskscore/internal/ui/theme"
	"github.com/glp360/riskscore/internal/wizard"
)

// UnansweredWarning is shown when the user tries to move on without an
// answer.
const UnansweredWarning = "Please select an answer to continue"

// QuestionScreen walks the user through the visible questions.
type QuestionScreen struct {
	wizard    *wizard.Wizard
	toContact func() screen.Screen

	questionID string
	options    components.OptionList
	warning    string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)
var _ screen.StatusProvider = (*QuestionScreen)(nil)

// New creates a QuestionScreen on the wizard's current question. toContact
// builds the screen shown once the last visible question is answered.
func New(w *wizard.Wizard, toContact func() screen.Screen) *QuestionScreen {
	s := &QuestionScreen{wizard: w, toContact: toContact}
	s.sync()
	return s
}

func (s *QuestionScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionScreen) Title() string {
	q, ok := s.wizard.Current()
	if !ok || q.Section == "" {
		return "Risk Score Test"
	}
	return q.Section
}

func (s *QuestionScreen) Status() string {
	pos, total := s.wizard.Position()
	return fmt.Sprintf("Question %d of %d", pos, total)
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	next := "Next"
	if s.wizard.IsLastQuestion() {
		next = "Continue"
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Select"},
		{Key: "Enter", Description: next},
	}
	if pos, _ := s.wizard.Position(); pos > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Previous"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// sync rebuilds the option list from the wizard, keeping the cursor while
// the question is unchanged.
func (s *QuestionScreen) sync() {
	q, ok := s.wizard.Current()
	if !ok {
		return
	}

	sel := s.wizard.Selection()
	labels := make([]string, len(q.Options))
	checked := make([]bool, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
		checked[i] = slices.Contains(sel, o.ID)
	}

	cursor := -1
	if q.ID == s.questionID {
		cursor = s.options.Cursor
	}
	s.options = components.NewOptionList(labels, checked, q.IsMulti())
	if cursor >= 0 && cursor < len(labels) {
		s.options.Cursor = cursor
	}
	s.questionID = q.ID
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	q, ok := s.wizard.Current()
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	if i, ok := s.options.IndexForKey(key); ok {
		s.options.Cursor = i
		s.selectOption(q, i)
		return s, nil
	}

	switch key {
	case "space", " ":
		s.selectOption(q, s.options.Cursor)
	case "enter":
		if !q.IsMulti() {
			if !s.options.Checked[s.options.Cursor] {
				s.selectOption(q, s.options.Cursor)
			}
			return s, s.advance()
		}
		if s.wizard.CanAdvance() {
			return s, s.advance()
		}
		s.selectOption(q, s.options.Cursor)
	case "right", "n", "tab":
		return s, s.advance()
	case "left", "b", "esc", "shift+tab":
		if s.wizard.Previous() {
			s.warning = ""
			s.sync()
		}
	default:
		s.options = s.options.Update(msg)
	}
	return s, nil
}

func (s *QuestionScreen) selectOption(q catalog.Question, i int) {
	if i < 0 || i >= len(q.Options) {
		return
	}
	if err := s.wizard.Select(q.Options[i].ID); err != nil {
		return
	}
	s.warning = ""
	s.sync()
}

func (s *QuestionScreen) advance() tea.Cmd {
	err := s.wizard.Next()
	switch {
	case errors.Is(err, wizard.ErrUnanswered):
		s.warning = UnansweredWarning
		return nil
	case err != nil:
		return nil
	}

	s.warning = ""
	if s.wizard.Phase() == wizard.PhaseContact {
		next := s.toContact()
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	s.sync()
	return nil
}

func (s *QuestionScreen) View(width, height int) string {
	q, ok := s.wizard.Current()
	if !ok {
		return ""
	}

	contentWidth := min(width-4, 76)
	var b strings.Builder

	bar := components.NewProgressBar("", s.wizard.Progress(), !layout.IsCompactWidth(width), contentWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if q.Section != "" {
		b.WriteString(theme.Section.Render(q.Section))
		b.WriteString("\n")
	}
	b.WriteString(theme.Body.Bold(true).Width(contentWidth).Render(q.Prompt))
	b.WriteString("\n")
	if q.IsMulti() {
		b.WriteString(theme.Hint.Render("Select all that apply"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.options.View())

	if s.warning != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.warning))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var buttons []string
	if pos, _ := s.wizard.Position(); pos > 1 {
		buttons = append(buttons, components.NewButton("← Previous").View())
	}
	nextLabel := "Next →"
	if s.wizard.IsLastQuestion() {
		nextLabel = "Continue →"
	}
	next := components.NewButton(nextLabel)
	next.Focused = s.wizard.CanAdvance()
	buttons = append(buttons, next.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(contentWidth).Render(b.String()))
}
