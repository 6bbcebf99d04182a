package services

// BuildEvaluationJSONSchema returns the evaluation output contract as a
// generic map. The same document is sent to the provider as a structured
// output constraint and compiled locally to re-validate whatever comes back.
func BuildEvaluationJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required": []string{
			"overall_score",
			"sub_scores",
			"summary",
			"priority_fixes",
			"actionable_tips",
			"country_specific_advice",
		},
		"properties": map[string]any{
			"overall_score": scoreProp(),
			"sub_scores": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"clarity", "impact", "structure", "ats_compatibility"},
				"properties": map[string]any{
					"clarity":           scoreProp(),
					"impact":            scoreProp(),
					"structure":         scoreProp(),
					"ats_compatibility": scoreProp(),
				},
			},
			"summary": stringProp(10, 300),
			"priority_fixes": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 3,
				"items":    stringProp(5, 180),
			},
			"actionable_tips": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 5,
				"items":    stringProp(5, 200),
			},
			"country_specific_advice": stringProp(5, 300),
		},
	}
}

func scoreProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 100}
}

func stringProp(minLen, maxLen int) map[string]any {
	return map[string]any{"type": "string", "minLength": minLen, "maxLength": maxLen}
}
