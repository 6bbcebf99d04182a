package services

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvcoach/api/internal/models"
)

// fakeOpenAIService counts outbound calls and returns a canned raw response.
type fakeOpenAIService struct {
	calls    int
	lastReq  *GenerationRequest
	response []byte
	err      error
}

func (f *fakeOpenAIService) GenerateEvaluation(_ context.Context, req *GenerationRequest) ([]byte, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func wrapAsPrimaryField(t *testing.T, payload any) []byte {
	t.Helper()
	inner, err := json.Marshal(payload)
	require.NoError(t, err)
	raw, err := json.Marshal(map[string]any{"output_text": string(inner)})
	require.NoError(t, err)
	return raw
}

func newTestScorer(provider OpenAIService) ScorerService {
	return NewScorerService(newTestBuilder(), provider)
}

func TestScoreShortCVMakesNoNetworkCall(t *testing.T) {
	provider := &fakeOpenAIService{}
	scorer := newTestScorer(provider)

	_, err := scorer.Score(context.Background(), &models.ScoreRequest{CVText: "short"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cv_too_short", validationErr.Code)
	assert.Zero(t, provider.calls)
}

func TestScoreDeliversValidatedResult(t *testing.T) {
	provider := &fakeOpenAIService{response: wrapAsPrimaryField(t, validEvaluationDoc())}
	scorer := newTestScorer(provider)

	result, err := scorer.Score(context.Background(), &models.ScoreRequest{Lang: "en", CVText: sampleCV})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 72, result.OverallScore)
	assert.Len(t, result.PriorityFixes, 3)

	// The request that went out was the schema-constrained one.
	require.NotNil(t, provider.lastReq)
	assert.Equal(t, instructionsEN, provider.lastReq.Instructions)
	assert.Equal(t, "json_schema", provider.lastReq.OutputFormat.Type)
}

func TestScoreProviderFailureIsTerminal(t *testing.T) {
	provider := &fakeOpenAIService{err: &ProviderError{StatusCode: 429, Body: "rate limited"}}
	scorer := newTestScorer(provider)

	_, err := scorer.Score(context.Background(), &models.ScoreRequest{CVText: sampleCV})
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, 429, providerErr.StatusCode)
	// Exactly one attempt, never retried.
	assert.Equal(t, 1, provider.calls)
}

func TestScoreEmptyProviderResponse(t *testing.T) {
	provider := &fakeOpenAIService{response: []byte(`{"output":[]}`)}
	scorer := newTestScorer(provider)

	_, err := scorer.Score(context.Background(), &models.ScoreRequest{CVText: sampleCV})
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, `{"output":[]}`, string(extractionErr.Raw))
}

func TestScoreNonConformingOutputRejected(t *testing.T) {
	doc := validEvaluationDoc()
	doc["priority_fixes"] = []string{"Only fix one", "Only fix two"}
	provider := &fakeOpenAIService{response: wrapAsPrimaryField(t, doc)}
	scorer := newTestScorer(provider)

	_, err := scorer.Score(context.Background(), &models.ScoreRequest{CVText: sampleCV})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestScoreUnparsableOutputRejected(t *testing.T) {
	raw, err := json.Marshal(map[string]any{"output_text": "I think this resume is fine."})
	require.NoError(t, err)
	provider := &fakeOpenAIService{response: raw}
	scorer := newTestScorer(provider)

	_, scoreErr := scorer.Score(context.Background(), &models.ScoreRequest{CVText: sampleCV})
	require.Error(t, scoreErr)

	var parseErr *ParseError
	require.ErrorAs(t, scoreErr, &parseErr)
	assert.Equal(t, "I think this resume is fine.", parseErr.Raw)
}
