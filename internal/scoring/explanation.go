package scoring

// Explanation is the static result-page copy for a category.
type Explanation struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Meaning  []string `json:"meaning"`
	YouNeed  []string `json:"youNeed"`
	Note     string   `json:"note,omitempty"`
}

var explanations = map[Category]Explanation{
	CategoryBase: {
		Title:    "🟢 GLP-1 360: BASE™️",
		Subtitle: "You're in the starting or low-risk phase.",
		Meaning: []string{
			"You're early in your GLP-1 journey",
			"Minimal muscle loss so far",
			"Side effects are mild",
			"Strength/metabolism still stable",
		},
		YouNeed: []string{
			"Gut prep",
			"Protein setup",
			"Basic strength foundation",
			"Weekly monitoring to avoid problems",
		},
	},
	CategoryTransform: {
		Title:    "🟡 GLP-1 360: TRANSFORM™️",
		Subtitle: "You're in the muscle-loss/plateau correction phase.",
		Meaning: []string{
			"Strength is dropping",
			"Muscle loss risk is high",
			"Side effects present",
			"Plateau likely",
			"Appetite too low or inconsistent",
			"Energy fluctuations",
		},
		YouNeed: []string{
			"Lean mass restoration",
			"Structured EMS/strength",
			"Gut correction",
			"Sculpting & tightening",
			"Micronutrient optimisation",
			"Metabolic repair",
		},
		Note: "This is the most common category.",
	},
	CategoryExit: {
		Title:    "🔴 GLP-1 360: EXIT™️",
		Subtitle: "You need tapering, rebound-risk prevention & metabolic reset.",
		Meaning: []string{
			"Severe muscle loss risk",
			"Very low appetite",
			"Significant side effects",
			"Plateau or sudden regain",
			"Planning to stop GLP-1",
			"Losing control of hunger after stopping",
		},
		YouNeed: []string{
			"Reverse diet",
			"Appetite training",
			"Metabolic stabilisation",
			"Strength rebuilding",
			"Gut reset",
			"Safe GLP-1 taper protocol",
		},
	},
}

// ExplanationFor returns the result-page copy for a category, falling back
// to BASE for unknown categories.
func ExplanationFor(c Category) Explanation {
	if e, ok := explanations[c]; ok {
		return e
	}
	return explanations[CategoryBase]
}

// PlanStep is one step of the recommended action plan.
type PlanStep struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var plans = map[Category][]PlanStep{
	CategoryBase: {
		{"Foundation Building", "Start with gut preparation and establish a solid protein intake routine (1g/kg body weight daily)"},
		{"Strength Training Setup", "Begin basic strength training 2-3x per week to preserve muscle mass during weight loss"},
		{"Weekly Monitoring", "Track your progress weekly to catch any issues early and adjust your approach"},
	},
	CategoryTransform: {
		{"Lean Mass Restoration", "Implement structured EMS/strength training program to rebuild lost muscle tissue"},
		{"Gut & Metabolic Correction", "Address digestive issues and optimize micronutrient intake for better energy and metabolism"},
		{"Body Sculpting & Tightening", "Focus on targeted exercises and treatments to improve body composition and skin elasticity"},
		{"Plateau Breaking Strategy", "Adjust your approach to overcome weight loss plateaus and continue progress"},
	},
	CategoryExit: {
		{"Safe GLP-1 Tapering Protocol", "Gradually reduce medication under supervision to minimize rebound weight gain risk"},
		{"Reverse Diet & Appetite Training", "Slowly increase caloric intake while retraining natural hunger signals"},
		{"Metabolic Stabilization", "Restore metabolic rate through strategic nutrition and exercise programming"},
		{"Strength Rebuilding & Gut Reset", "Intensive strength training combined with gut health restoration for long-term success"},
	},
}

// PlanFor returns the recommended action plan for a category. Unknown
// categories get no plan.
func PlanFor(c Category) []PlanStep {
	steps := plans[c]
	out := make([]PlanStep, len(steps))
	copy(out, steps)
	return out
}
