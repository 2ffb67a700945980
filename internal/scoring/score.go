package scoring

import (
	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
)

// CalculateScore sums the scores of every selected option across the
// catalog. Unanswered questions and option IDs that do not resolve add
// nothing. Single-choice questions only count their first selection.
func CalculateScore(a answers.Set, c *catalog.Catalog) int {
	total := 0
	for _, q := range c.Questions() {
		sel := a.Get(q.ID)
		if len(sel) == 0 {
			continue
		}

		switch q.Type {
		case catalog.TypeSingle:
			if o, ok := q.Option(sel[0]); ok {
				total += o.Score
			}
		case catalog.TypeMulti:
			for _, id := range sel {
				if o, ok := q.Option(id); ok {
					total += o.Score
				}
			}
		}
	}
	return total
}
