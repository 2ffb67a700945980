package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/router"
	"github.com/glp360/riskscore/internal/screen"
	"github.com/glp360/riskscore/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// pulse frames draw a heartbeat line under the banner
var pulseFrames = []string{
	"──────╮╭──────────────",
	"───────╮╭─────────────",
	"────────╰╯╭╮──────────",
	"──────────╰╯╭─────────",
}

type tickMsg time.Time

// WelcomeScreen shows the title card before the first question.
type WelcomeScreen struct {
	next         func() screen.Screen
	questions    int
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen produced
// by next. questions is the number of questions shown in the intro text.
func New(next func() screen.Screen, questions int) *WelcomeScreen {
	return &WelcomeScreen{next: next, questions: questions}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	nextScreen := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: nextScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))

	if w.elapsed >= phase1End {
		frame := pulseFrames[w.tickCount%len(pulseFrames)]
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Accent).Render(frame))
	}

	if w.elapsed >= phase2End {
		title := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("GLP-1 360™️ RISK SCORE TEST")
		sub := theme.Hint.Render("Answer each question to receive your personalized category")
		sections = append(sections, "", title, sub)

		if w.questions > 0 {
			sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Secondary).
				Render(fmt.Sprintf("Up to %d questions", w.questions)))
		}

		sections = append(sections, "", theme.Hint.Render("press any key to start"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, strings.Split(strings.Join(sections, "\n"), "\n")...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
