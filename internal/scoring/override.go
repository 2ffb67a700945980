package scoring

import (
	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
)

// Flag marks an individual answer that an override policy considered
// significant, e.g. a severe symptom.
type Flag struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
	Label      string `json:"label"`
}

// Decision is the outcome of the override step.
type Decision struct {
	Category    Category `json:"category"`
	IsOverride  bool     `json:"isOverride"`
	TriggeredBy string   `json:"triggeredBy,omitempty"`
	Flags       []Flag   `json:"flags"`
}

// OverridePolicy may promote the base category using individual answers.
// Implementations must be pure and must never demote below base.
type OverridePolicy interface {
	Apply(base Category, score int, a answers.Set, c *catalog.Catalog) Decision
}

// OverrideFunc adapts a function to OverridePolicy.
type OverrideFunc func(base Category, score int, a answers.Set, c *catalog.Catalog) Decision

func (f OverrideFunc) Apply(base Category, score int, a answers.Set, c *catalog.Catalog) Decision {
	return f(base, score, a, c)
}

// IdentityPolicy is the default policy: it returns the base category
// unchanged, raises no flags and never reports an override.
type IdentityPolicy struct{}

func (IdentityPolicy) Apply(base Category, _ int, _ answers.Set, _ *catalog.Catalog) Decision {
	return Decision{Category: base, Flags: []Flag{}}
}

// FinalCategory computes the base category for score and passes it through
// policy. A nil policy behaves like IdentityPolicy. Decisions that would
// lower the category are ignored.
func FinalCategory(score int, a answers.Set, c *catalog.Catalog, policy OverridePolicy) Decision {
	base := BaseCategory(score)
	if policy == nil {
		policy = IdentityPolicy{}
	}

	d := policy.Apply(base, score, a, c)
	if d.Flags == nil {
		d.Flags = []Flag{}
	}
	if d.Category.Rank() < base.Rank() {
		return Decision{Category: base, Flags: d.Flags}
	}
	d.IsOverride = d.Category != base
	return d
}
