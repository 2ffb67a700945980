package catalog

// QuestionType controls how many options a question accepts.
type QuestionType string

const (
	// TypeSingle accepts exactly one option.
	TypeSingle QuestionType = "single"
	// TypeMulti accepts zero or more options.
	TypeMulti QuestionType = "multi"
)

// NoneLabel is the display label that marks a multi-select question's
// exclusive "None" option.
const NoneLabel = "None"

// Option is one selectable answer of a question.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Score int    `json:"score" yaml:"score"`
}

// Question is a static questionnaire entry.
type Question struct {
	ID      string       `json:"id" yaml:"id"`
	Section string       `json:"section" yaml:"section"`
	Prompt  string       `json:"question" yaml:"question"`
	Type    QuestionType `json:"type" yaml:"type"`
	Options []Option     `json:"options" yaml:"options"`
}

// IsMulti reports whether the question accepts several options.
func (q Question) IsMulti() bool {
	return q.Type == TypeMulti
}

// Option looks up an option by ID.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// NoneOption returns the option labelled NoneLabel, if the question has one.
func (q Question) NoneOption() (Option, bool) {
	for _, o := range q.Options {
		if o.Label == NoneLabel {
			return o, true
		}
	}
	return Option{}, false
}

// Label returns the display label of the option with the given ID, or ""
// when the ID does not resolve.
func (q Question) Label(optionID string) string {
	o, ok := q.Option(optionID)
	if !ok {
		return ""
	}
	return o.Label
}
