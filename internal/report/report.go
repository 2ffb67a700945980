// Package report renders the result page: the category explanation, the
// recommended action plan and the follow-up notice.
package report

import (
	"fmt"
	"strings"

	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/wizard"
)

// Style is the presentation of a category.
type Style struct {
	Icon       string `json:"icon"`
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// StyleFor returns the colours and icon for a category. Anything that is
// not BASE or TRANSFORM is shown as EXIT.
func StyleFor(c scoring.Category) Style {
	switch c {
	case scoring.CategoryBase:
		return Style{Icon: "🟢", Background: "#e8f5e9", Border: "#4caf50", Text: "#2e7d32"}
	case scoring.CategoryTransform:
		return Style{Icon: "🔶", Background: "#fff3e0", Border: "#ff9800", Text: "#e65100"}
	default:
		return Style{Icon: "🔴", Background: "#ffebee", Border: "#f44336", Text: "#c62828"}
	}
}

// Page is everything the result page shows.
type Page struct {
	Result      scoring.Result
	Explanation scoring.Explanation
	Plan        []scoring.PlanStep
	Style       Style
	Contact     wizard.Contact
}

// NewPage assembles the page for a result.
func NewPage(r scoring.Result, contact wizard.Contact) Page {
	return Page{
		Result:      r,
		Explanation: scoring.ExplanationFor(r.FinalCategory),
		Plan:        scoring.PlanFor(r.FinalCategory),
		Style:       StyleFor(r.FinalCategory),
		Contact:     contact,
	}
}

// Markdown returns the page as markdown. submitted adds the submission
// confirmation.
func (p Page) Markdown(submitted bool) string {
	var b strings.Builder
	e := p.Explanation

	fmt.Fprintf(&b, "# %s %s\n\n", p.Style.Icon, p.Result.FinalCategory.Label())
	fmt.Fprintf(&b, "**%d** points\n\n", p.Result.TotalScore)
	if p.Result.IsOverride {
		fmt.Fprintf(&b, "_Category raised from %s by your answers._\n\n", p.Result.BaseCategory.Label())
	}

	fmt.Fprintf(&b, "## 📊 %s\n\n", e.Subtitle)
	b.WriteString("### 🔍 What This Means\n\n")
	for _, item := range e.Meaning {
		fmt.Fprintf(&b, "- ✓ %s\n", item)
	}
	b.WriteString("\n### 💪 What You Need\n\n")
	for _, item := range e.YouNeed {
		fmt.Fprintf(&b, "- → %s\n", item)
	}
	if e.Note != "" {
		fmt.Fprintf(&b, "\n> 💡 %s\n", e.Note)
	}

	if len(p.Plan) > 0 {
		b.WriteString("\n## Your Recommended Action Plan\n\n")
		fmt.Fprintf(&b, "Personalized for your **%s** category\n\n", p.Result.FinalCategory.Label())
		for i, step := range p.Plan {
			fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, step.Title, step.Text)
		}
	}

	if phone := strings.TrimSpace(p.Contact.Phone); phone != "" && p.Contact.ContactRequested {
		b.WriteString("\n## Ready to Start Your Journey?\n\n")
		fmt.Fprintf(&b, "Our team will contact you at **%s** to discuss your personalized plan and next steps.\n", phone)
	}

	if submitted {
		b.WriteString("\n### Results Submitted Successfully\n\n")
		if name := strings.TrimSpace(p.Contact.Name); name != "" {
			fmt.Fprintf(&b, "Thank you, **%s**! ", name)
		}
		b.WriteString("Your assessment has been saved and our specialists will review your results shortly.\n")
	}

	return b.String()
}
