package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/glp360/riskscore/internal/report"
	"github.com/glp360/riskscore/internal/router"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/screen"
	"github.com/glp360/riskscore/internal/screens/contact"
	"github.com/glp360/riskscore/internal/screens/question"
	"github.com/glp360/riskscore/internal/screens/result"
	"github.com/glp360/riskscore/internal/screens/welcome"
	"github.com/glp360/riskscore/internal/ui/layout"
	"github.com/glp360/riskscore/internal/visibility"
	"github.com/glp360/riskscore/internal/wizard"
)

// Options holds dependencies for the app.
type Options struct {
	Engine *scoring.Engine
	Rules  visibility.Rules

	// Renderer renders the result page. Nil falls back to plain text.
	Renderer *report.Renderer

	// Submit hands each finished run to the delivery pipeline. Optional.
	Submit result.SubmitFunc

	// SkipWelcome starts directly on the first question.
	SkipWelcome bool
}

// flow builds the screens of one questionnaire run. Each run gets its own
// wizard; screens hand over to each other with router.ReplaceScreenMsg.
type flow struct {
	opts Options
}

func (f *flow) start() screen.Screen {
	w := wizard.New(f.opts.Engine, f.opts.Rules)
	if w.Phase() == wizard.PhaseContact {
		return f.contact(w)
	}
	return f.questions(w)
}

func (f *flow) questions(w *wizard.Wizard) screen.Screen {
	return question.New(w, func() screen.Screen { return f.contact(w) })
}

func (f *flow) contact(w *wizard.Wizard) screen.Screen {
	return contact.New(w,
		func() screen.Screen { return f.questions(w) },
		func() screen.Screen { return f.result(w) },
	)
}

func (f *flow) result(w *wizard.Wizard) screen.Screen {
	return result.New(w, result.Options{
		Renderer: f.opts.Renderer,
		Submit:   f.opts.Submit,
		Restart:  f.start,
	})
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel on the welcome screen.
func newAppModel(opts Options) AppModel {
	f := &flow{opts: opts}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = f.start()
	} else {
		initial = welcome.New(f.start, opts.Engine.Catalog().Len())
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Any key", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Engine == nil {
		return fmt.Errorf("app: no scoring engine")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
