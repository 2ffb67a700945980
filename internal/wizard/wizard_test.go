package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/visibility"
)

func newSeedWizard() *Wizard {
	return New(scoring.NewEngine(catalog.Default(), nil), visibility.DefaultRules())
}

// answerThrough answers every question up to (but not including) stopID with
// its first option and advances past it.
func answerThrough(t *testing.T, w *Wizard, stopID string) {
	t.Helper()
	for {
		q, ok := w.Current()
		require.True(t, ok, "ran out of questions before %s", stopID)
		if q.ID == stopID {
			return
		}
		require.NoError(t, w.Select(q.Options[0].ID))
		require.NoError(t, w.Next())
	}
}

func TestNew_StartsOnFirstQuestion(t *testing.T) {
	w := newSeedWizard()

	assert.Equal(t, PhaseQuestions, w.Phase())
	assert.Equal(t, 0, w.Index())
	q, ok := w.Current()
	require.True(t, ok)
	assert.Equal(t, "q1", q.ID)
	assert.True(t, w.Contact().ContactRequested)
	assert.False(t, w.CanAdvance())
}

func TestNext_RequiresAnswer(t *testing.T) {
	w := newSeedWizard()

	assert.ErrorIs(t, w.Next(), ErrUnanswered)
	require.NoError(t, w.Select("q1_b"))
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, 1, w.Index())
}

func TestSelect_SingleReplaces(t *testing.T) {
	w := newSeedWizard()

	require.NoError(t, w.Select("q1_a"))
	require.NoError(t, w.Select("q1_c"))
	assert.Equal(t, []string{"q1_c"}, []string(w.Selection()))
}

func TestSelect_MultiAppliesNoneRule(t *testing.T) {
	w := newSeedWizard()
	answerThrough(t, w, "q8")

	require.NoError(t, w.Select("q8_a"))
	require.NoError(t, w.Select("q8_b"))
	assert.Equal(t, []string{"q8_a", "q8_b"}, []string(w.Selection()))

	require.NoError(t, w.Select("q8_e"))
	assert.Equal(t, []string{"q8_e"}, []string(w.Selection()))

	require.NoError(t, w.Select("q8_c"))
	assert.Equal(t, []string{"q8_c"}, []string(w.Selection()))
}

func TestBranch_WarningSignSkipsRemainingQuestions(t *testing.T) {
	w := newSeedWizard()
	answerThrough(t, w, "q12")

	require.NoError(t, w.Select("q12_b"))
	assert.True(t, w.IsLastQuestion())
	require.NoError(t, w.Next())
	assert.Equal(t, PhaseContact, w.Phase())
}

func TestBranch_AllNoneShowsEveryQuestion(t *testing.T) {
	w := newSeedWizard()
	answerThrough(t, w, "q12")

	require.NoError(t, w.Select("q12_d"))
	assert.False(t, w.IsLastQuestion())
	require.NoError(t, w.Next())

	q, _ := w.Current()
	assert.Equal(t, "q13", q.ID)
	require.NoError(t, w.Select("q13_d"))
	require.NoError(t, w.Next())

	q, _ = w.Current()
	assert.Equal(t, "q14", q.ID)
	assert.True(t, w.IsLastQuestion())
	require.NoError(t, w.Select("q14_a"))
	require.NoError(t, w.Next())
	assert.Equal(t, PhaseContact, w.Phase())
}

func TestPrevious_SkipsHiddenQuestions(t *testing.T) {
	w := newSeedWizard()
	assert.False(t, w.Previous(), "no question before the first")

	answerThrough(t, w, "q12")
	require.NoError(t, w.Select("q12_d"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Select("q13_a"))
	require.NoError(t, w.Next())
	require.Equal(t, PhaseContact, w.Phase())

	// q14 is hidden because q13 reported a sign, so going back lands on q13.
	require.True(t, w.Previous())
	q, _ := w.Current()
	assert.Equal(t, "q13", q.ID)

	require.True(t, w.Previous())
	q, _ = w.Current()
	assert.Equal(t, "q12", q.ID)
}

func TestProgress(t *testing.T) {
	w := newSeedWizard()
	visible := visibility.DefaultRules().VisibleCount(w.Answers(), catalog.Default())

	assert.InDelta(t, 1/float64(visible+1), w.Progress(), 1e-9)

	require.NoError(t, w.Select("q1_a"))
	assert.InDelta(t, 2/float64(visible+1), w.Progress(), 1e-9)

	p := w.Progress()
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestPosition(t *testing.T) {
	w := newSeedWizard()
	pos, total := w.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 13, total, "q14 stays hidden until q12 and q13 are None")

	answerThrough(t, w, "q12")
	require.NoError(t, w.Select("q12_a"))
	pos, total = w.Position()
	assert.Equal(t, 12, pos)
	assert.Equal(t, 12, total)
}

func TestFinish_RequiresContact(t *testing.T) {
	w := newSeedWizard()

	_, err := w.Finish()
	assert.ErrorIs(t, err, ErrWrongPhase)

	answerThrough(t, w, "q12")
	require.NoError(t, w.Select("q12_a"))
	require.NoError(t, w.Next())

	w.SetName("  ")
	w.SetPhone("0400 000 000")
	_, err = w.Finish()
	assert.ErrorIs(t, err, ErrContactIncomplete)

	w.SetName("  Ada  ")
	r, err := w.Finish()
	require.NoError(t, err)
	assert.Equal(t, PhaseResult, w.Phase())
	assert.Equal(t, "Ada", w.Contact().Name)
	assert.Equal(t, 1.0, w.Progress())

	// First options score 0 except q8_a (1); q12_a adds 3.
	assert.Equal(t, 4, r.TotalScore)
	assert.Equal(t, scoring.CategoryBase, r.FinalCategory)
}

func TestFinish_IsFinal(t *testing.T) {
	w := newSeedWizard()
	answerThrough(t, w, "q12")
	require.NoError(t, w.Select("q12_b"))
	require.NoError(t, w.Next())
	w.SetName("Ada")
	w.SetPhone("123")

	first, err := w.Finish()
	require.NoError(t, err)

	assert.ErrorIs(t, w.Select("q1_e"), ErrWrongPhase)
	assert.False(t, w.Previous())

	second, err := w.Finish()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, ok := w.Result()
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestFinish_PrunesHiddenAnswers(t *testing.T) {
	w := newSeedWizard()
	answerThrough(t, w, "q12")

	// Walk the full branch, then go back and report a warning sign.
	require.NoError(t, w.Select("q12_d"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Select("q13_d"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Select("q14_b"))
	require.True(t, w.Previous())
	require.True(t, w.Previous())
	require.NoError(t, w.Select("q12_a"))
	require.NoError(t, w.Next())
	require.Equal(t, PhaseContact, w.Phase())

	w.SetName("Ada")
	w.SetPhone("123")
	r, err := w.Finish()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"q13", "q14"}, w.Pruned())
	assert.False(t, w.Answers().Answered("q14"))
	assert.Equal(t, 4, r.TotalScore, "hidden q14 answer must not count")
}
