package services

import (
	"context"
	"log"

	"cvcoach/api/internal/models"
)

type ScorerService interface {
	Score(ctx context.Context, req *models.ScoreRequest) (*models.EvaluationResult, error)
}

type scorerService struct {
	promptBuilder *PromptBuilder
	openAIService OpenAIService
}

func NewScorerService(promptBuilder *PromptBuilder, openAIService OpenAIService) ScorerService {
	return &scorerService{
		promptBuilder: promptBuilder,
		openAIService: openAIService,
	}
}

// Score runs the evaluation pipeline: validate input, request a
// schema-constrained generation, extract the text, re-validate it. Execution
// is strictly sequential and every failure is terminal for the invocation;
// nothing here retries or keeps state between calls.
func (s *scorerService) Score(ctx context.Context, req *models.ScoreRequest) (*models.EvaluationResult, error) {
	genReq, err := s.promptBuilder.BuildGenerationRequest(req)
	if err != nil {
		return nil, err
	}

	raw, err := s.openAIService.GenerateEvaluation(ctx, genReq)
	if err != nil {
		return nil, err
	}

	text, err := ExtractOutputText(raw)
	if err != nil {
		log.Printf("❌ No usable text in provider response (%d bytes)", len(raw))
		return nil, err
	}

	result, err := ValidateEvaluation(text)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Evaluation delivered: overall_score=%d", result.OverallScore)
	return result, nil
}
