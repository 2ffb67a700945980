package handler

import (
	"net/http"

	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/report"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/visibility"
	"github.com/glp360/riskscore/internal/wizard"
)

// QuestionnaireHandler serves the catalog and the stateless wizard
// operations. The browser keeps the answers; every request carries them.
type QuestionnaireHandler struct {
	engine *scoring.Engine
	rules  visibility.Rules
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(engine *scoring.Engine, rules visibility.Rules) *QuestionnaireHandler {
	return &QuestionnaireHandler{engine: engine, rules: rules}
}

// CatalogResponse is the body of GET /v1/catalog
type CatalogResponse struct {
	Name      string             `json:"name,omitempty"`
	Version   string             `json:"version,omitempty"`
	Questions []catalog.Question `json:"questions"`
	Branch    BranchDescription  `json:"branch"`
}

// BranchDescription tells clients which questions are conditional.
type BranchDescription struct {
	AlwaysVisible int    `json:"alwaysVisible"`
	Root          string `json:"root"`
	Leaf1         string `json:"leaf1"`
	Leaf2         string `json:"leaf2"`
}

// Catalog handles GET /v1/catalog
func (h *QuestionnaireHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	c := h.engine.Catalog()
	writeJSON(w, http.StatusOK, CatalogResponse{
		Name:      c.Name(),
		Version:   c.Version(),
		Questions: c.Questions(),
		Branch: BranchDescription{
			AlwaysVisible: h.rules.AlwaysVisiblePrefix,
			Root:          h.rules.BranchRoot,
			Leaf1:         h.rules.BranchLeaf1,
			Leaf2:         h.rules.BranchLeaf2,
		},
	})
}

// NavigationRequest is the body of POST /v1/navigation
type NavigationRequest struct {
	Answers answers.Set `json:"answers"`
	Current int         `json:"current"`
}

// NavigationResponse describes where the wizard can go from Current.
// Next and Previous are -1 when there is no such question.
type NavigationResponse struct {
	Visible  []string `json:"visible"`
	Next     int      `json:"next"`
	Previous int      `json:"previous"`
	IsLast   bool     `json:"isLast"`
	Progress float64  `json:"progress"`
}

// Navigation handles POST /v1/navigation
func (h *QuestionnaireHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	var req NavigationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Answers == nil {
		req.Answers = answers.New()
	}

	c := h.engine.Catalog()
	if req.Current < -1 || req.Current >= c.Len() {
		writeError(w, http.StatusBadRequest, "current is out of range")
		return
	}

	visible := make([]string, 0, c.Len())
	for i, q := range c.Questions() {
		if h.rules.IsVisible(i, req.Answers, c) {
			visible = append(visible, q.ID)
		}
	}

	next := h.rules.Next(req.Current, req.Answers, c)
	progress := float64(req.Answers.Count()+1) / float64(len(visible)+1)
	if progress > 1 {
		progress = 1
	}

	writeJSON(w, http.StatusOK, NavigationResponse{
		Visible:  visible,
		Next:     next,
		Previous: h.rules.Previous(req.Current, req.Answers, c),
		IsLast:   req.Current >= 0 && next < 0,
		Progress: progress,
	})
}

// SelectionRequest is the body of POST /v1/selection
type SelectionRequest struct {
	QuestionID string            `json:"questionId"`
	OptionID   string            `json:"optionId"`
	Current    answers.Selection `json:"current"`
}

// SelectionResponse carries the selection after the click.
type SelectionResponse struct {
	Selection answers.Selection `json:"selection"`
}

// Selection handles POST /v1/selection
func (h *QuestionnaireHandler) Selection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decode(w, r, &req) {
		return
	}

	c := h.engine.Catalog()
	q, ok := c.Question(req.QuestionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown question")
		return
	}
	if _, ok := q.Option(req.OptionID); !ok {
		writeError(w, http.StatusNotFound, "unknown option")
		return
	}

	sel := answers.Selection{req.OptionID}
	if q.IsMulti() {
		sel = answers.ApplyMultiSelect(c, q.ID, req.OptionID, req.Current)
	}
	if sel == nil {
		sel = answers.Selection{}
	}
	writeJSON(w, http.StatusOK, SelectionResponse{Selection: sel})
}

// ScoreRequest is the body of POST /v1/score
type ScoreRequest struct {
	Answers answers.Set `json:"answers"`
}

// ScoreResponse is the result page data.
type ScoreResponse struct {
	Result      scoring.Result      `json:"result"`
	Category    string              `json:"categoryLabel"`
	Explanation scoring.Explanation `json:"explanation"`
	Plan        []scoring.PlanStep  `json:"plan"`
	Style       report.Style        `json:"style"`
	Pruned      []string            `json:"pruned,omitempty"`
}

// Score handles POST /v1/score
func (h *QuestionnaireHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decode(w, r, &req) {
		return
	}
	result, pruned := h.evaluate(req.Answers)
	writeJSON(w, http.StatusOK, newScoreResponse(result, pruned))
}

// evaluate scores a copy of a with the answers to hidden questions removed.
func (h *QuestionnaireHandler) evaluate(a answers.Set) (scoring.Result, []string) {
	if a == nil {
		a = answers.New()
	}
	a = a.Clone()
	pruned := h.rules.Prune(a, h.engine.Catalog())
	return h.engine.Evaluate(a), pruned
}

func newScoreResponse(r scoring.Result, pruned []string) ScoreResponse {
	page := report.NewPage(r, wizard.Contact{})
	return ScoreResponse{
		Result:      r,
		Category:    r.FinalCategory.Label(),
		Explanation: page.Explanation,
		Plan:        page.Plan,
		Style:       page.Style,
		Pruned:      pruned,
	}
}
