package models

// Signal is one named detector contribution inside a verdict.
type Signal struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

// Citation is an optional grounding reference attached to a verdict.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Verdict is the authenticity assessment returned by the analysis engine.
type Verdict struct {
	Confidence     float64    `json:"confidence"`
	Verdict        string     `json:"verdict"`
	Signals        []Signal   `json:"signals"`
	Recommendation string     `json:"recommendation"`
	Narrative      string     `json:"narrative"`
	Citations      []Citation `json:"citations,omitempty"`
}
