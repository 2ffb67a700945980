package visibility

import (
	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
)

// Next scans forward from the question after from and returns the first
// visible index, or -1 when none remains. Pass -1 to find the first question.
func (r Rules) Next(from int, a answers.Set, c *catalog.Catalog) int {
	for i := from + 1; i < c.Len(); i++ {
		if r.IsVisible(i, a, c) {
			return i
		}
	}
	return -1
}

// Previous scans backward from the question before from and returns the
// first visible index, or -1 when none exists.
func (r Rules) Previous(from int, a answers.Set, c *catalog.Catalog) int {
	if from > c.Len() {
		from = c.Len()
	}
	for i := from - 1; i >= 0; i-- {
		if r.IsVisible(i, a, c) {
			return i
		}
	}
	return -1
}

// Visible returns the visibility of every question in catalog order.
func (r Rules) Visible(a answers.Set, c *catalog.Catalog) []bool {
	out := make([]bool, c.Len())
	for i := range out {
		out[i] = r.IsVisible(i, a, c)
	}
	return out
}

// VisibleCount returns how many questions are currently shown.
func (r Rules) VisibleCount(a answers.Set, c *catalog.Catalog) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if r.IsVisible(i, a, c) {
			n++
		}
	}
	return n
}

// Prune removes answers to questions that are no longer visible and
// returns the removed question IDs in removal order. Removing an answer can
// hide a later branch question, so passes repeat until nothing changes.
func (r Rules) Prune(a answers.Set, c *catalog.Catalog) []string {
	var removed []string
	for {
		changed := false
		for i := 0; i < c.Len(); i++ {
			q, _ := c.At(i)
			if _, ok := a[q.ID]; !ok {
				continue
			}
			if !r.IsVisible(i, a, c) {
				delete(a, q.ID)
				removed = append(removed, q.ID)
				changed = true
			}
		}
		if !changed {
			return removed
		}
	}
}
