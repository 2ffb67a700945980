package submit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/wizard"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Question{
		{ID: "q1", Type: catalog.TypeSingle, Options: []catalog.Option{{ID: "q1_a", Label: "Yes", Score: 2}, {ID: "q1_b", Label: "No"}}},
		{ID: "q2", Type: catalog.TypeMulti, Options: []catalog.Option{
			{ID: "q2_a", Label: "Nausea", Score: 1},
			{ID: "q2_b", Label: "Fatigue", Score: 1},
			{ID: "q2_n", Label: catalog.NoneLabel},
		}},
		{ID: "q3", Type: catalog.TypeSingle, Options: []catalog.Option{{ID: "q3_a", Label: "Maybe"}}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func TestBuildPayload(t *testing.T) {
	c := testCatalog(t)
	a := answers.Set{
		"q1": {"q1_a"},
		"q2": {"q2_b", "bogus", "q2_a"},
	}
	r := scoring.Result{
		TotalScore:    4,
		BaseCategory:  scoring.CategoryBase,
		FinalCategory: scoring.CategoryBase,
		Flags:         []scoring.Flag{},
	}
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	p := BuildPayload(c, a, wizard.Contact{Name: " Ada ", Phone: "0400 ", ContactRequested: true}, r, now)

	want := map[string]string{
		"q1": "Yes",
		"q2": "Fatigue, Nausea",
		"q3": "",
	}
	if diff := cmp.Diff(want, p.Answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if p.Name != "Ada" || p.Phone != "0400" {
		t.Errorf("contact not trimmed: %q %q", p.Name, p.Phone)
	}
	if !p.ContactRequested {
		t.Error("ContactRequested should carry over")
	}
	if p.TotalScore != 4 || p.FinalCategory != scoring.CategoryBase {
		t.Errorf("result fields = %d %s", p.TotalScore, p.FinalCategory)
	}
}

func TestBuildPayload_UnresolvedSingle(t *testing.T) {
	c := testCatalog(t)
	p := BuildPayload(c, answers.Set{"q1": {"gone"}}, wizard.Contact{}, scoring.Result{}, time.Now())
	if got := p.Answers["q1"]; got != "" {
		t.Errorf("unresolved single label = %q, want empty", got)
	}
}

func TestPayload_MarshalJSON(t *testing.T) {
	p := Payload{
		SubmissionID:     "abc",
		Timestamp:        time.Date(2026, 3, 1, 9, 30, 5, 123e6, time.FixedZone("X", 3600)),
		Name:             "Ada",
		Phone:            "0400",
		ContactRequested: false,
		Answers:          map[string]string{"q1": "Yes", "name": "collides"},
		TotalScore:       31,
		BaseCategory:     scoring.CategoryTransform,
		FinalCategory:    scoring.CategoryExit,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"submissionId":     "abc",
		"timestamp":        "2026-03-01T08:30:05.123Z",
		"name":             "Ada",
		"phone":            "0400",
		"contactRequested": false,
		"q1":               "Yes",
		"totalScore":       float64(31),
		"baseCategory":     "GLP-1 360: TRANSFORM™️",
		"finalCategory":    "GLP-1 360: EXIT™️",
		"triggeredFlags":   []any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestPayload_CategoryLabelsRoundTrip(t *testing.T) {
	for _, c := range scoring.AllCategories() {
		data, err := json.Marshal(Payload{BaseCategory: c, FinalCategory: c})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		label, _ := got["finalCategory"].(string)
		if label != c.Label() {
			t.Errorf("finalCategory = %q, want %q", label, c.Label())
		}
		if parsed, ok := scoring.ParseCategory(label); !ok || parsed != c {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q", label, parsed, ok, c)
		}
	}
}
