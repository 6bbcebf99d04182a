package services

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvaluationDoc() map[string]any {
	return map[string]any{
		"overall_score": 72,
		"sub_scores": map[string]any{
			"clarity":           70,
			"impact":            65,
			"structure":         80,
			"ats_compatibility": 75,
		},
		"summary": "Solid profile with room to sharpen impact statements.",
		"priority_fixes": []string{
			"Quantify achievements in recent roles",
			"Move key skills above the fold",
			"Shorten the personal statement",
		},
		"actionable_tips": []string{
			"Add metrics to top bullet points",
			"Use active verbs consistently",
			"Tailor the headline to the target role",
			"List certifications in a dedicated section",
			"Trim roles older than ten years",
		},
		"country_specific_advice": "Include language levels, expected in Swiss applications.",
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestValidateEvaluationPassThrough(t *testing.T) {
	result, err := ValidateEvaluation(mustJSON(t, validEvaluationDoc()))
	require.NoError(t, err)

	assert.Equal(t, 72, result.OverallScore)
	assert.Equal(t, 70, result.SubScores.Clarity)
	assert.Equal(t, 75, result.SubScores.ATSCompatibility)
	assert.Len(t, result.PriorityFixes, 3)
	assert.Len(t, result.ActionableTips, 5)
	assert.Equal(t, "Include language levels, expected in Swiss applications.", result.CountrySpecificAdvice)
}

func TestValidateEvaluationParseError(t *testing.T) {
	raw := "Sorry, I cannot evaluate this resume."

	_, err := ValidateEvaluation(raw)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, raw, parseErr.Raw)
}

func TestValidateEvaluationSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{
			name: "two priority fixes instead of three",
			mutate: func(doc map[string]any) {
				doc["priority_fixes"] = []string{"Fix number one", "Fix number two"}
			},
		},
		{
			name: "four actionable tips instead of five",
			mutate: func(doc map[string]any) {
				doc["actionable_tips"] = []string{
					"First actionable tip", "Second actionable tip",
					"Third actionable tip", "Fourth actionable tip",
				}
			},
		},
		{
			name: "extra field rejected",
			mutate: func(doc map[string]any) {
				doc["confidence"] = 0.9
			},
		},
		{
			name: "overall score above bounds",
			mutate: func(doc map[string]any) {
				doc["overall_score"] = 101
			},
		},
		{
			name: "non-integer score",
			mutate: func(doc map[string]any) {
				doc["overall_score"] = 72.5
			},
		},
		{
			name: "missing summary",
			mutate: func(doc map[string]any) {
				delete(doc, "summary")
			},
		},
		{
			name: "summary below minimum length",
			mutate: func(doc map[string]any) {
				doc["summary"] = "too short"
			},
		},
		{
			name: "missing sub score",
			mutate: func(doc map[string]any) {
				doc["sub_scores"] = map[string]any{
					"clarity": 70, "impact": 65, "structure": 80,
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validEvaluationDoc()
			tt.mutate(doc)
			raw := mustJSON(t, doc)

			_, err := ValidateEvaluation(raw)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, raw, schemaErr.Raw)
		})
	}
}
