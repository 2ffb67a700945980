package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/submit"
	"github.com/glp360/riskscore/internal/wizard"
)

// Submitter accepts finished submissions for background delivery.
type Submitter interface {
	Submit(p submit.Payload) (string, error)
}

// SubmissionHandler scores and forwards finished questionnaires.
type SubmissionHandler struct {
	questions *QuestionnaireHandler
	submitter Submitter
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(questions *QuestionnaireHandler, submitter Submitter, logger *zap.Logger) *SubmissionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionHandler{
		questions: questions,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

// SubmissionRequest is the body of POST /v1/submissions
type SubmissionRequest struct {
	Answers          answers.Set `json:"answers"`
	Name             string      `json:"name"`
	Phone            string      `json:"phone"`
	ContactRequested *bool       `json:"contactRequested"`
}

// SubmissionResponse acknowledges an accepted submission.
type SubmissionResponse struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Score  ScoreResponse `json:"score"`
}

// Create handles POST /v1/submissions
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if !decode(w, r, &req) {
		return
	}

	contact := wizard.Contact{Name: req.Name, Phone: req.Phone, ContactRequested: true}
	if req.ContactRequested != nil {
		contact.ContactRequested = *req.ContactRequested
	}
	if !contact.Complete() {
		writeError(w, http.StatusBadRequest, "Please fill in your name and phone number")
		return
	}
	contact = contact.Trimmed()

	a := req.Answers
	if a == nil {
		a = answers.New()
	}
	a = a.Clone()
	c := h.questions.engine.Catalog()
	pruned := h.questions.rules.Prune(a, c)
	result := h.questions.engine.Evaluate(a)

	payload := submit.BuildPayload(c, a, contact, result, h.now())
	id, err := h.submitter.Submit(payload)
	if errors.Is(err, submit.ErrClosed) {
		writeError(w, http.StatusServiceUnavailable, "server is shutting down")
		return
	}
	if err != nil {
		h.logger.Error("failed to accept submission", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to accept submission")
		return
	}

	h.logger.Info("submission accepted",
		zap.String("submission_id", id),
		zap.String("category", string(result.FinalCategory)),
		zap.Int("total_score", result.TotalScore))

	writeJSON(w, http.StatusAccepted, SubmissionResponse{
		ID:     id,
		Status: "accepted",
		Score:  newScoreResponse(result, pruned),
	})
}
