package scoring

import (
	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
)

// Result is the final, immutable outcome of a completed questionnaire.
type Result struct {
	TotalScore    int      `json:"totalScore"`
	BaseCategory  Category `json:"baseCategory"`
	FinalCategory Category `json:"finalCategory"`
	IsOverride    bool     `json:"isOverride"`
	TriggeredBy   string   `json:"triggeredBy,omitempty"`
	Flags         []Flag   `json:"triggeredFlags"`
}

// FlagLabels returns the labels of the triggered flags.
func (r Result) FlagLabels() []string {
	out := make([]string, 0, len(r.Flags))
	for _, f := range r.Flags {
		out = append(out, f.Label)
	}
	return out
}

// Engine scores answer sets against one catalog.
type Engine struct {
	catalog *catalog.Catalog
	policy  OverridePolicy
}

// NewEngine creates an Engine. A nil policy means IdentityPolicy.
func NewEngine(c *catalog.Catalog, policy OverridePolicy) *Engine {
	if policy == nil {
		policy = IdentityPolicy{}
	}
	return &Engine{catalog: c, policy: policy}
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Evaluate scores a completed answer set.
func (e *Engine) Evaluate(a answers.Set) Result {
	score := CalculateScore(a, e.catalog)
	d := FinalCategory(score, a, e.catalog, e.policy)
	return Result{
		TotalScore:    score,
		BaseCategory:  BaseCategory(score),
		FinalCategory: d.Category,
		IsOverride:    d.IsOverride,
		TriggeredBy:   d.TriggeredBy,
		Flags:         d.Flags,
	}
}
