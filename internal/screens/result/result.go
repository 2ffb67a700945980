package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/report"
	"github.com/glp360/riskscore/internal/router"
	"github.com/glp360/riskscore/internal/screen"
	"github.com/glp360/riskscore/internal/ui/components"
	"github.com/glp360/riskscore/internal/ui/layout"
	"github.com/glp360/riskscore/internal/ui/theme"
	"github.com/glp360/riskscore/internal/wizard"
)

const submittingText = "Submitting your results..."

// SubmitFunc hands a finished wizard to the delivery pipeline. It must not
// block on the network.
type SubmitFunc func(w *wizard.Wizard) error

// Options configures a ResultScreen.
type Options struct {
	// Renderer renders the page markdown. When nil the page is shown as
	// plain text under a coloured banner.
	Renderer *report.Renderer

	// Submit is called once when the screen starts. Optional.
	Submit SubmitFunc

	// Restart builds the screen for a fresh run. When nil the menu only
	// offers Quit.
	Restart func() screen.Screen
}

type submittedMsg struct {
	err error
}

// ResultScreen shows the category, its explanation and the action plan.
type ResultScreen struct {
	wizard *wizard.Wizard
	opts   Options
	page   report.Page

	submitting bool
	submitted  bool
	started    bool

	menu   components.Menu
	offset int

	// rendered caches the page body for renderedWidth.
	rendered      []string
	renderedWidth int
	renderedDone  bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for a finished wizard.
func New(w *wizard.Wizard, opts Options) *ResultScreen {
	r, _ := w.Result()
	s := &ResultScreen{
		wizard: w,
		opts:   opts,
		page:   report.NewPage(r, w.Contact()),
	}

	var items []components.MenuItem
	if opts.Restart != nil {
		items = append(items, components.MenuItem{
			Label: "Start again",
			Action: func() tea.Cmd {
				next := opts.Restart()
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	s.menu = components.NewMenu(items)
	return s
}

func (s *ResultScreen) Init() tea.Cmd {
	if s.started || s.opts.Submit == nil {
		s.started = true
		return nil
	}
	s.started = true
	s.submitting = true
	submit, w := s.opts.Submit, s.wizard
	return func() tea.Msg {
		return submittedMsg{err: submit(w)}
	}
}

func (s *ResultScreen) Title() string {
	return "Your Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		// Delivery problems are reported through the log, never to the
		// respondent.
		s.submitting = false
		s.submitted = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
			return s, nil
		case "down", "j":
			s.offset++
			return s, nil
		case "pgup":
			s.offset = max(0, s.offset-10)
			return s, nil
		case "pgdown", "space", " ":
			s.offset += 10
			return s, nil
		case "home", "g":
			s.offset = 0
			return s, nil
		case "q":
			return s, tea.Quit
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

// body returns the rendered page lines for width.
func (s *ResultScreen) body(width int) []string {
	if s.rendered != nil && s.renderedWidth == width && s.renderedDone == s.submitted {
		return s.rendered
	}

	var out string
	if s.opts.Renderer != nil {
		if text, err := s.opts.Renderer.Render(s.page, s.submitted); err == nil {
			out = text
		}
	}
	if out == "" {
		out = s.plain(width)
	}

	s.rendered = strings.Split(strings.TrimRight(out, "\n"), "\n")
	s.renderedWidth = width
	s.renderedDone = s.submitted
	return s.rendered
}

func (s *ResultScreen) plain(width int) string {
	p := s.page
	banner := theme.CategoryBanner(p.Result.FinalCategory).Render(
		fmt.Sprintf("%s %s  ·  %d points", p.Style.Icon, p.Result.FinalCategory.Label(), p.Result.TotalScore))
	text := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(max(width-4, 20)).
		Render(p.Markdown(s.submitted))
	return banner + "\n\n" + text
}

func (s *ResultScreen) View(width, height int) string {
	var footer strings.Builder
	if s.submitting {
		footer.WriteString(theme.Hint.Render(submittingText))
		footer.WriteString("\n")
	}
	footer.WriteString(s.menu.View())
	foot := footer.String()

	lines := s.body(width)
	visible := height - lipgloss.Height(foot) - 1
	if visible < 1 {
		visible = 1
	}

	maxOffset := max(0, len(lines)-visible)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(len(lines), s.offset+visible)

	var b strings.Builder
	b.WriteString(strings.Join(lines[s.offset:end], "\n"))
	b.WriteString("\n")
	for i := end - s.offset; i < visible; i++ {
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, foot))
	return b.String()
}
