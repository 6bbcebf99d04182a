package models

// ScoreRequest is the input of POST /score. Lang is "fr" or "en" (French
// default), country is free text defaulting to "CH", job_title is optional.
type ScoreRequest struct {
	Lang     string `json:"lang"`
	Country  string `json:"country"`
	JobTitle string `json:"job_title"`
	CVText   string `json:"cv_text"`
}

type SubScores struct {
	Clarity          int `json:"clarity"`
	Impact           int `json:"impact"`
	Structure        int `json:"structure"`
	ATSCompatibility int `json:"ats_compatibility"`
}

// EvaluationResult is the exact output contract of the scoring pipeline. The
// provider is asked for this shape and the validator re-checks it; no fields
// beyond this shape are accepted.
type EvaluationResult struct {
	OverallScore          int       `json:"overall_score"`
	SubScores             SubScores `json:"sub_scores"`
	Summary               string    `json:"summary"`
	PriorityFixes         []string  `json:"priority_fixes"`
	ActionableTips        []string  `json:"actionable_tips"`
	CountrySpecificAdvice string    `json:"country_specific_advice"`
}

type PremiumStatusResponse struct {
	Email   string `json:"email"`
	Premium bool   `json:"premium"`
}
