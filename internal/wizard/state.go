// Package wizard drives one pass through the questionnaire: question
// navigation, contact capture and the final scoring.
package wizard

import (
	"errors"
	"strings"
)

// Phase is the current step of the wizard.
type Phase int

const (
	PhaseQuestions Phase = iota // Answering visible questions
	PhaseContact                // Collecting name and phone
	PhaseResult                 // Scored; result is final
)

func (p Phase) String() string {
	switch p {
	case PhaseQuestions:
		return "questions"
	case PhaseContact:
		return "contact"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

var (
	// ErrUnanswered is returned when advancing past a question with no selection.
	ErrUnanswered = errors.New("current question is unanswered")

	// ErrContactIncomplete is returned when finishing without a name or phone.
	ErrContactIncomplete = errors.New("name and phone number are required")

	// ErrWrongPhase is returned for operations that do not apply to the
	// current phase.
	ErrWrongPhase = errors.New("operation not allowed in this phase")
)

// Contact is the respondent's contact details.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`

	// ContactRequested records whether the respondent asked for a follow-up
	// call. It starts out true.
	ContactRequested bool `json:"contactRequested"`
}

// Complete reports whether both name and phone are non-blank.
func (c Contact) Complete() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Phone) != ""
}

// Trimmed returns the contact with surrounding whitespace removed.
func (c Contact) Trimmed() Contact {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}
