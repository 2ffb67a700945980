package catalog

// Catalog is the ordered, read-only question table consumed by the
// visibility and scoring code. Build one with New, Parse or Load.
type Catalog struct {
	name      string
	version   string
	questions []Question
	byID      map[string]int
}

// New builds a Catalog from questions in display order. The slice is copied.
// The questions are checked structurally; use Parse to also apply the JSON
// schema to raw files.
func New(questions []Question) (*Catalog, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	return build("", "", questions), nil
}

func build(name, version string, questions []Question) *Catalog {
	c := &Catalog{
		name:      name,
		version:   version,
		questions: make([]Question, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	copy(c.questions, questions)
	for i, q := range c.questions {
		c.byID[q.ID] = i
	}
	return c
}

// Name returns the catalog's name, if the source file declared one.
func (c *Catalog) Name() string {
	return c.name
}

// Version returns the catalog's semantic version, if declared.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at position i. The second result is false when i
// is out of range.
func (c *Catalog) At(i int) (Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of all questions in order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question looks up a question by ID.
func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Index returns the position of the question with the given ID, or -1.
func (c *Catalog) Index(id string) int {
	i, ok := c.byID[id]
	if !ok {
		return -1
	}
	return i
}

// Option resolves an option under a question.
func (c *Catalog) Option(questionID, optionID string) (Option, bool) {
	q, ok := c.Question(questionID)
	if !ok {
		return Option{}, false
	}
	return q.Option(optionID)
}

// NoneOption returns the "None" option of a question. It is false when the
// question is unknown or has no such option.
func (c *Catalog) NoneOption(questionID string) (Option, bool) {
	q, ok := c.Question(questionID)
	if !ok {
		return Option{}, false
	}
	return q.NoneOption()
}
