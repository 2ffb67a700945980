package wizard

import (
	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/visibility"
)

// Wizard holds the state of a single questionnaire run. It is not safe for
// concurrent use.
type Wizard struct {
	engine  *scoring.Engine
	rules   visibility.Rules
	answers answers.Set
	current int
	phase   Phase
	contact Contact
	result  *scoring.Result
	pruned  []string
}

// New starts a wizard on the first visible question of the engine's catalog.
func New(engine *scoring.Engine, rules visibility.Rules) *Wizard {
	w := &Wizard{
		engine:  engine,
		rules:   rules,
		answers: answers.New(),
		contact: Contact{ContactRequested: true},
	}
	w.current = rules.Next(-1, w.answers, engine.Catalog())
	if w.current < 0 {
		w.phase = PhaseContact
	}
	return w
}

func (w *Wizard) catalog() *catalog.Catalog {
	return w.engine.Catalog()
}

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	return w.phase
}

// Index returns the catalog index of the current question, or -1 outside
// the question phase.
func (w *Wizard) Index() int {
	if w.phase != PhaseQuestions {
		return -1
	}
	return w.current
}

// Current returns the question being answered.
func (w *Wizard) Current() (catalog.Question, bool) {
	if w.phase != PhaseQuestions {
		return catalog.Question{}, false
	}
	return w.catalog().At(w.current)
}

// Selection returns the selection for the current question.
func (w *Wizard) Selection() answers.Selection {
	q, ok := w.Current()
	if !ok {
		return nil
	}
	return w.answers.Get(q.ID)
}

// Answers returns a copy of the answers collected so far.
func (w *Wizard) Answers() answers.Set {
	return w.answers.Clone()
}

// Select records optionID on the current question: it replaces the answer
// of a single-choice question and toggles a multi-select one.
func (w *Wizard) Select(optionID string) error {
	q, ok := w.Current()
	if !ok {
		return ErrWrongPhase
	}
	w.answers.Apply(w.catalog(), q.ID, optionID)
	return nil
}

// CanAdvance reports whether the current question has a selection.
func (w *Wizard) CanAdvance() bool {
	return len(w.Selection()) > 0
}

// IsLastQuestion reports whether no visible question follows the current
// one, given the current answers.
func (w *Wizard) IsLastQuestion() bool {
	if w.phase != PhaseQuestions {
		return false
	}
	return w.rules.Next(w.current, w.answers, w.catalog()) < 0
}

// Next moves to the next visible question, or to the contact step after
// the last one.
func (w *Wizard) Next() error {
	if w.phase != PhaseQuestions {
		return ErrWrongPhase
	}
	if !w.CanAdvance() {
		return ErrUnanswered
	}
	next := w.rules.Next(w.current, w.answers, w.catalog())
	if next < 0 {
		w.phase = PhaseContact
		return nil
	}
	w.current = next
	return nil
}

// Previous steps back to the closest earlier visible question. From the
// contact step it returns to the last visible question. It reports false
// when there is nowhere to go back to.
func (w *Wizard) Previous() bool {
	switch w.phase {
	case PhaseContact:
		last := w.rules.Previous(w.catalog().Len(), w.answers, w.catalog())
		if last < 0 {
			return false
		}
		w.current = last
		w.phase = PhaseQuestions
		return true
	case PhaseQuestions:
		prev := w.rules.Previous(w.current, w.answers, w.catalog())
		if prev < 0 {
			return false
		}
		w.current = prev
		return true
	default:
		return false
	}
}

// Position returns the 1-based position of the current question among the
// visible ones and the number of visible questions.
func (w *Wizard) Position() (pos, total int) {
	c := w.catalog()
	for i := 0; i < c.Len(); i++ {
		if !w.rules.IsVisible(i, w.answers, c) {
			continue
		}
		total++
		if i <= w.current {
			pos = total
		}
	}
	if w.phase != PhaseQuestions {
		pos = total
	}
	return pos, total
}

// Progress returns overall completion in [0, 1]. It counts the answers
// recorded so far plus the step in progress against the visible questions
// plus the contact step.
func (w *Wizard) Progress() float64 {
	if w.phase == PhaseResult {
		return 1
	}
	visible := w.rules.VisibleCount(w.answers, w.catalog())
	p := float64(w.answers.Count()+1) / float64(visible+1)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Contact returns the contact details entered so far.
func (w *Wizard) Contact() Contact {
	return w.contact
}

// SetName updates the respondent's name.
func (w *Wizard) SetName(name string) {
	w.contact.Name = name
}

// SetPhone updates the respondent's phone number.
func (w *Wizard) SetPhone(phone string) {
	w.contact.Phone = phone
}

// SetContactRequested records whether a follow-up call is wanted.
func (w *Wizard) SetContactRequested(v bool) {
	w.contact.ContactRequested = v
}

// Finish validates the contact step, drops answers to questions that ended
// up hidden and scores the run. Once finished, the result never changes and
// further calls return it again.
func (w *Wizard) Finish() (scoring.Result, error) {
	if w.result != nil {
		return *w.result, nil
	}
	if w.phase != PhaseContact {
		return scoring.Result{}, ErrWrongPhase
	}
	if !w.contact.Complete() {
		return scoring.Result{}, ErrContactIncomplete
	}

	w.contact = w.contact.Trimmed()
	w.pruned = w.rules.Prune(w.answers, w.catalog())
	r := w.engine.Evaluate(w.answers)
	w.result = &r
	w.phase = PhaseResult
	return r, nil
}

// Result returns the final result once the wizard has finished.
func (w *Wizard) Result() (scoring.Result, bool) {
	if w.result == nil {
		return scoring.Result{}, false
	}
	return *w.result, true
}

// Pruned returns the question IDs whose answers were discarded by Finish
// because the questions were no longer visible.
func (w *Wizard) Pruned() []string {
	return w.pruned
}
