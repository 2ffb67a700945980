// Package visibility decides which catalog questions are shown, given the
// answers collected so far. Some warning-sign questions are skipped once an
// earlier answer already reports a warning sign.
package visibility

import (
	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
)

// Default rule identifiers for the built-in catalog.
const (
	DefaultAlwaysVisiblePrefix = 11
	DefaultBranchRoot          = "q12"
	DefaultBranchLeaf1         = "q13"
	DefaultBranchLeaf2         = "q14"
)

// Rules configures the conditional branch. Questions before
// AlwaysVisiblePrefix (by catalog position) and the branch root are always
// shown. BranchLeaf1 is shown while the root is unanswered or answered with
// exactly its "None" option; BranchLeaf2 only when both the root and leaf 1
// are exactly "None". Every other question is shown.
type Rules struct {
	AlwaysVisiblePrefix int
	BranchRoot          string
	BranchLeaf1         string
	BranchLeaf2         string
}

// DefaultRules returns the rules for the built-in catalog.
func DefaultRules() Rules {
	return Rules{
		AlwaysVisiblePrefix: DefaultAlwaysVisiblePrefix,
		BranchRoot:          DefaultBranchRoot,
		BranchLeaf1:         DefaultBranchLeaf1,
		BranchLeaf2:         DefaultBranchLeaf2,
	}
}

// IsVisible reports whether the question at index should be shown.
// An out-of-range index is never visible.
func (r Rules) IsVisible(index int, a answers.Set, c *catalog.Catalog) bool {
	q, ok := c.At(index)
	if !ok {
		return false
	}
	if index < r.AlwaysVisiblePrefix {
		return true
	}

	switch q.ID {
	case r.BranchRoot:
		return true
	case r.BranchLeaf1:
		root := a.Get(r.BranchRoot)
		if len(root) == 0 {
			return true
		}
		return isNone(root, r.BranchRoot, c)
	case r.BranchLeaf2:
		return isNone(a.Get(r.BranchRoot), r.BranchRoot, c) &&
			isNone(a.Get(r.BranchLeaf1), r.BranchLeaf1, c)
	}
	return true
}

// isNone reports whether sel is exactly the question's "None" option. A
// question without a "None" option never matches.
func isNone(sel answers.Selection, questionID string, c *catalog.Catalog) bool {
	none, ok := c.NoneOption(questionID)
	if !ok {
		return false
	}
	return sel.Is(none.ID)
}
