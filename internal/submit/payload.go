package submit

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/wizard"
)

// timestampLayout matches JavaScript's Date.toISOString, which the
// receiving spreadsheet script expects.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Payload is one result submission. Answers are carried as display labels
// keyed by question ID so the receiver needs no copy of the catalog.
type Payload struct {
	SubmissionID     string
	Timestamp        time.Time
	Name             string
	Phone            string
	ContactRequested bool
	Answers          map[string]string
	TotalScore       int
	BaseCategory     scoring.Category
	FinalCategory    scoring.Category
	TriggeredFlags   []string
}

// BuildPayload assembles the submission for a finished run. Every catalog
// question gets an entry: the chosen label for single-choice questions and
// the chosen labels joined with ", " for multi-select ones. Option IDs that
// do not resolve are dropped; unanswered questions map to "".
func BuildPayload(c *catalog.Catalog, a answers.Set, contact wizard.Contact, r scoring.Result, now time.Time) Payload {
	labels := make(map[string]string, c.Len())
	for _, q := range c.Questions() {
		sel := a.Get(q.ID)
		if !q.IsMulti() {
			if len(sel) > 0 {
				labels[q.ID] = q.Label(sel[0])
			} else {
				labels[q.ID] = ""
			}
			continue
		}

		parts := make([]string, 0, len(sel))
		for _, id := range sel {
			if l := q.Label(id); l != "" {
				parts = append(parts, l)
			}
		}
		labels[q.ID] = strings.Join(parts, ", ")
	}

	contact = contact.Trimmed()
	return Payload{
		Timestamp:        now,
		Name:             contact.Name,
		Phone:            contact.Phone,
		ContactRequested: contact.ContactRequested,
		Answers:          labels,
		TotalScore:       r.TotalScore,
		BaseCategory:     r.BaseCategory,
		FinalCategory:    r.FinalCategory,
		TriggeredFlags:   r.FlagLabels(),
	}
}

// MarshalJSON flattens the answers into the top-level object next to the
// fixed fields. Fixed fields win over a question ID with the same name.
func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Answers)+10)
	for id, label := range p.Answers {
		out[id] = label
	}

	flags := p.TriggeredFlags
	if flags == nil {
		flags = []string{}
	}

	out["timestamp"] = p.Timestamp.UTC().Format(timestampLayout)
	out["name"] = p.Name
	out["phone"] = p.Phone
	out["contactRequested"] = p.ContactRequested
	out["totalScore"] = p.TotalScore
	// The receiving sheet stores the branded labels, not the codes.
	out["baseCategory"] = p.BaseCategory.Label()
	out["finalCategory"] = p.FinalCategory.Label()
	out["triggeredFlags"] = flags
	if p.SubmissionID != "" {
		out["submissionId"] = p.SubmissionID
	}
	return json.Marshal(out)
}
