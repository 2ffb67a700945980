// Package answers holds the answer set collected by the wizard and the
// selection rules applied while the user answers.
package answers

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Selection is the chosen option IDs for one question. Single-choice
// questions hold at most one element.
type Selection []string

// Contains reports whether optionID is selected.
func (s Selection) Contains(optionID string) bool {
	return slices.Contains(s, optionID)
}

// Is reports whether the selection is exactly the single option optionID.
func (s Selection) Is(optionID string) bool {
	return len(s) == 1 && s[0] == optionID
}

// UnmarshalJSON accepts either a bare option ID or a list of IDs.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = fromScalar(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("selection must be a string or a list of strings: %w", err)
	}
	*s = many
	return nil
}

// UnmarshalYAML accepts either a bare option ID or a sequence of IDs.
func (s *Selection) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var one string
		if err := node.Decode(&one); err != nil {
			return err
		}
		*s = fromScalar(one)
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*s = many
		return nil
	default:
		return fmt.Errorf("line %d: selection must be a string or a list of strings", node.Line)
	}
}

func fromScalar(id string) Selection {
	if id == "" {
		return nil
	}
	return Selection{id}
}

// Set maps question IDs to selections. The zero value is not usable; build
// one with New or a map literal.
type Set map[string]Selection

// New returns an empty answer set.
func New() Set {
	return make(Set)
}

// Get returns the selection for a question, nil when unanswered.
func (s Set) Get(questionID string) Selection {
	return s[questionID]
}

// Single returns the chosen option of a single-choice question, or "".
func (s Set) Single(questionID string) string {
	sel := s[questionID]
	if len(sel) == 0 {
		return ""
	}
	return sel[0]
}

// Answered reports whether the question has a non-empty selection.
func (s Set) Answered(questionID string) bool {
	return len(s[questionID]) > 0
}

// Count returns the number of questions with an entry, answered or not.
func (s Set) Count() int {
	return len(s)
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = slices.Clone(v)
	}
	return out
}
