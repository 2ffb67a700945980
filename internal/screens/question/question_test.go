package question

import (
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
func (s *stubScreen) View(int, int) string                    { return "contact" }
func (s *stubScreen) Title() string                           { return "Contact" }

func newTestScreen() (*QuestionScreen, *wizard.Wizard) {
	w := wizard.New(scoring.NewEngine(catalog.Default(), nil), visibility.DefaultRules())
	return New(w, func() screen.Screen { return &stubScreen{} }), w
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func currentID(t *testing.T, w *wizard.Wizard) string {
	t.Helper()
	q, ok := w.Current()
	if !ok {
		t.Fatal("no current question")
	}
	return q.ID
}

func TestEnterOnSingleSelectsAndAdvances(t *testing.T) {
	s, w := newTestScreen()

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("advancing between questions should not produce a command")
	}
	if got := currentID(t, w); got != "q2" {
		t.Fatalf("current = %s, want q2", got)
	}
	if got := w.Answers().Get("q1"); len(got) != 1 || got[0] != "q1_a" {
		t.Errorf("q1 answer = %v, want [q1_a]", got)
	}
	if got := s.Status(); got != "Question 2 of 13" {
		t.Errorf("Status() = %q", got)
	}
}

func TestNumberKeySelects(t *testing.T) {
	s, w := newTestScreen()

	s.Update(runeKey('2'))
	if got := w.Selection(); len(got) != 1 || got[0] != "q1_b" {
		t.Fatalf("selection = %v, want [q1_b]", got)
	}
	if s.options.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.options.Cursor)
	}
	if got := currentID(t, w); got != "q1" {
		t.Errorf("number key should not advance, current = %s", got)
	}
}

func TestAdvanceWithoutAnswerWarns(t *testing.T) {
	s, w := newTestScreen()

	s.Update(runeKey('n'))
	if got := currentID(t, w); got != "q1" {
		t.Fatalf("current = %s, want q1", got)
	}
	if view := s.View(100, 40); !strings.Contains(view, UnansweredWarning) {
		t.Error("view should show the unanswered warning")
	}

	s.Update(specialKey(tea.KeySpace))
	if s.warning != "" {
		t.Error("selecting an answer should clear the warning")
	}
}

func TestMultiEnterTogglesThenAdvances(t *testing.T) {
	s, w := newTestScreen()
	for currentID(t, w) != "q8" {
		s.Update(specialKey(tea.KeyEnter))
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	if got := currentID(t, w); got != "q8" {
		t.Fatalf("unanswered multi should toggle, not advance; current = %s", got)
	}
	if got := w.Selection(); len(got) != 1 || got[0] != "q8_b" {
		t.Fatalf("selection = %v, want [q8_b]", got)
	}

	s.Update(specialKey(tea.KeyEnter))
	if got := currentID(t, w); got != "q9" {
		t.Errorf("answered multi should advance; current = %s", got)
	}
}

func TestEscGoesBack(t *testing.T) {
	s, w := newTestScreen()
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEscape))

	if got := currentID(t, w); got != "q1" {
		t.Fatalf("current = %s, want q1", got)
	}
	if !s.options.Checked[0] {
		t.Error("previous answer should still be checked")
	}

	// Going back from the first question is a no-op.
	s.Update(specialKey(tea.KeyEscape))
	if got := currentID(t, w); got != "q1" {
		t.Errorf("current = %s, want q1", got)
	}
}

func TestLastQuestionReplacesWithContact(t *testing.T) {
	s, w := newTestScreen()

	var cmd tea.Cmd
	for i := 0; i < 50 && cmd == nil; i++ {
		_, cmd = s.Update(specialKey(tea.KeyEnter))
	}
	if cmd == nil {
		t.Fatal("expected a command after the last question")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*stubScreen); !ok {
		t.Errorf("replacement screen = %T", msg.Screen)
	}
	if w.Phase() != wizard.PhaseContact {
		t.Errorf("phase = %v, want contact", w.Phase())
	}
}

func TestViewShowsPromptAndButtons(t *testing.T) {
	s, w := newTestScreen()
	q, _ := w.Current()

	view := s.View(100, 40)
	if !strings.Contains(view, q.Options[0].Label) {
		t.Error("view should list the options")
	}
	if !strings.Contains(view, "Next →") {
		t.Error("view should show the next button")
	}
	if strings.Contains(view, "← Previous") {
		t.Error("first question should not show a previous button")
	}
	if s.Title() != q.Section && q.Section != "" {
		t.Errorf("Title() = %q, want %q", s.Title(), q.Section)
	}
}
