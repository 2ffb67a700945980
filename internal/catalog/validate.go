package catalog

import (
	"fmt"
	"strings"
)

// validateQuestions performs the structural checks the JSON schema cannot
// express: unique IDs across the catalog and within each question.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "catalog has no questions")
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("question %d", i)
		if q.ID == "" {
			errs = append(errs, prefix+": empty ID")
		} else {
			prefix = fmt.Sprintf("question %q", q.ID)
			if seen[q.ID] {
				errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
			}
			seen[q.ID] = true
		}

		if q.Type != TypeSingle && q.Type != TypeMulti {
			errs = append(errs, fmt.Sprintf("%s: unknown type %q", prefix, q.Type))
		}
		if len(q.Options) == 0 {
			errs = append(errs, prefix+": no options")
		}

		optSeen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.ID == "" {
				errs = append(errs, prefix+": option with empty ID")
				continue
			}
			if optSeen[o.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option ID %q", prefix, o.ID))
			}
			optSeen[o.ID] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
