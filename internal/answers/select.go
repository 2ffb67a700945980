package answers

import (
	"github.com/glp360/riskscore/internal/catalog"
)

// ApplyMultiSelect returns the selection that results from toggling optionID
// on a multi-select question. Choosing the question's "None" option replaces
// everything with just "None"; any other option toggles membership and drops
// "None". current is never modified.
//
// An unknown question behaves like one without a "None" option.
func ApplyMultiSelect(c *catalog.Catalog, questionID, optionID string, current Selection) Selection {
	none, hasNone := c.NoneOption(questionID)
	return toggle(none.ID, hasNone, optionID, current)
}

// Toggle applies ApplyMultiSelect to the question's entry in s.
func (s Set) Toggle(c *catalog.Catalog, questionID, optionID string) Selection {
	sel := ApplyMultiSelect(c, questionID, optionID, s[questionID])
	s[questionID] = sel
	return sel
}

// Choose records the answer to a single-choice question.
func (s Set) Choose(questionID, optionID string) {
	s[questionID] = Selection{optionID}
}

// Apply records optionID the way the question type dictates: single-choice
// questions replace the answer, multi-select questions toggle it.
func (s Set) Apply(c *catalog.Catalog, questionID, optionID string) Selection {
	q, ok := c.Question(questionID)
	if ok && q.IsMulti() {
		return s.Toggle(c, questionID, optionID)
	}
	s.Choose(questionID, optionID)
	return s[questionID]
}

func toggle(noneID string, hasNone bool, optionID string, current Selection) Selection {
	if hasNone && optionID == noneID {
		return Selection{optionID}
	}

	next := make(Selection, 0, len(current)+1)
	present := false
	for _, id := range current {
		if id == optionID {
			present = true
			continue
		}
		if hasNone && id == noneID {
			continue
		}
		next = append(next, id)
	}
	if !present {
		next = append(next, optionID)
	}
	return next
}
