package domain

// ResumeReport is the structured result of a resume analysis. The field set
// matches the JSON schema requested from the model verbatim.
type ResumeReport struct {
	Score           int      `json:"score"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ActionableSteps []string `json:"actionableSteps"`
}

// Valid reports whether the report passed schema-level sanity checks.
func (r *ResumeReport) Valid() bool {
	return r != nil && r.Score >= 0 && r.Score <= 100 && r.Summary != ""
}
