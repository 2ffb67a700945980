package result

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/router"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/screen"
	"github.com/glp360/riskscore/internal/visibility"
	"github.com/glp360/riskscore/internal/wizard"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "restart" }

// finishedWizard answers every question with its first option and finishes
// with the given contact details.
func finishedWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w := wizard.New(scoring.NewEngine(catalog.Default(), nil), visibility.DefaultRules())
	for w.Phase() == wizard.PhaseQuestions {
		q, _ := w.Current()
		if err := w.Select(q.Options[0].ID); err != nil {
			t.Fatal(err)
		}
		if err := w.Next(); err != nil {
			t.Fatal(err)
		}
	}
	w.SetName("Jane")
	w.SetPhone("555-0100")
	if _, err := w.Finish(); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestInitSubmitsOnce(t *testing.T) {
	w := finishedWizard(t)
	calls := 0
	s := New(w, Options{Submit: func(got *wizard.Wizard) error {
		calls++
		if got != w {
			t.Error("submit received a different wizard")
		}
		return nil
	}})

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init should return the submit command")
	}
	if !strings.Contains(s.View(100, 60), submittingText) {
		t.Error("view should show the submitting notice")
	}

	s.Update(cmd())
	if calls != 1 {
		t.Errorf("submit calls = %d, want 1", calls)
	}
	if s.Init() != nil {
		t.Error("a second Init must not submit again")
	}

	view := s.View(100, 60)
	if strings.Contains(view, submittingText) {
		t.Error("submitting notice should be gone")
	}
	if !strings.Contains(view, "Results Submitted Successfully") {
		t.Error("view should confirm the submission")
	}
	if !strings.Contains(view, "Thank you,") || !strings.Contains(view, "Jane") {
		t.Error("view should thank the respondent by name")
	}
}

func TestSubmitErrorIsNotShown(t *testing.T) {
	w := finishedWizard(t)
	s := New(w, Options{Submit: func(*wizard.Wizard) error { return errors.New("closed") }})

	s.Update(s.Init()())
	view := s.View(100, 60)
	if strings.Contains(view, "closed") {
		t.Error("delivery errors must not reach the view")
	}
	if !strings.Contains(view, "Results Submitted Successfully") {
		t.Error("view should still confirm the submission")
	}
}

func TestPlainViewShowsCategory(t *testing.T) {
	w := finishedWizard(t)
	s := New(w, Options{})
	if cmd := s.Init(); cmd != nil {
		t.Error("Init without Submit should not return a command")
	}

	r, _ := w.Result()
	view := s.View(100, 80)
	for _, want := range []string{
		r.FinalCategory.Label(),
		"points",
		"What This Means",
		"Ready to Start Your Journey?",
		"555-0100",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScrollClamps(t *testing.T) {
	s := New(finishedWizard(t), Options{})
	s.Init()

	for i := 0; i < 500; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.View(100, 20)
	lines := s.body(100)
	if s.offset > len(lines) {
		t.Errorf("offset %d beyond %d lines", s.offset, len(lines))
	}

	s.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if s.offset != 0 {
		t.Errorf("offset after home = %d, want 0", s.offset)
	}
}

func TestStartAgainReplaces(t *testing.T) {
	s := New(finishedWizard(t), Options{Restart: func() screen.Screen { return &stubScreen{} }})
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "restart" {
		t.Errorf("replacement = %q", msg.Screen.Title())
	}
}
