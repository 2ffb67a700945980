package scoring

// Category is the risk bucket a total score falls into.
type Category string

const (
	CategoryBase      Category = "BASE"
	CategoryTransform Category = "TRANSFORM"
	CategoryExit      Category = "EXIT"
)

// Inclusive upper bounds of the score bands.
const (
	BaseMaxScore      = 15
	TransformMaxScore = 30
)

// AllCategories returns all categories from lowest to highest risk.
func AllCategories() []Category {
	return []Category{CategoryBase, CategoryTransform, CategoryExit}
}

// BaseCategory maps a total score to its category: 0-15 BASE, 16-30
// TRANSFORM, anything else EXIT. Scores are never negative by construction;
// a negative score falls through to EXIT.
func BaseCategory(score int) Category {
	switch {
	case score >= 0 && score <= BaseMaxScore:
		return CategoryBase
	case score > BaseMaxScore && score <= TransformMaxScore:
		return CategoryTransform
	default:
		return CategoryExit
	}
}

// Label returns the branded program name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryBase:
		return "GLP-1 360: BASE™️"
	case CategoryTransform:
		return "GLP-1 360: TRANSFORM™️"
	case CategoryExit:
		return "GLP-1 360: EXIT™️"
	default:
		return string(c)
	}
}

// Rank orders categories by severity. Unknown categories rank below BASE.
func (c Category) Rank() int {
	switch c {
	case CategoryBase:
		return 1
	case CategoryTransform:
		return 2
	case CategoryExit:
		return 3
	default:
		return 0
	}
}

// ParseCategory accepts a category code or its branded label.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllCategories() {
		if s == string(c) || s == c.Label() {
			return c, true
		}
	}
	return "", false
}
