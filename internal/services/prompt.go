package services

import (
	"fmt"
	"strings"

	"cvcoach/api/internal/models"
)

// minCVLength is the minimum trimmed length of cv_text. Anything shorter is
// rejected before any network access.
const minCVLength = 40

const instructionsFR = `Tu es un expert senior en recrutement et en optimisation de CV, spécialisé dans le marché suisse et européen. Tu évalues le CV fourni avec rigueur et bienveillance, en te basant uniquement sur son texte. Tu réponds exclusivement en français, sur un ton professionnel et direct, et tu retournes uniquement le JSON demandé, sans aucun autre texte.`

const instructionsEN = `You are a senior recruiting and CV optimization expert, specialized in the Swiss and European job market. You evaluate the provided resume rigorously and constructively, based solely on its text. You answer exclusively in English, in a professional and direct tone, and you return only the requested JSON, with no other text.`

type PromptBuilder struct {
	model       string
	temperature float32
}

func NewPromptBuilder(model string, temperature float32) *PromptBuilder {
	return &PromptBuilder{
		model:       model,
		temperature: temperature,
	}
}

// BuildGenerationRequest validates the scoring input and assembles one
// schema-constrained generation request: the locale instruction, a single
// user message carrying the request fields and the resume verbatim, the
// strict output schema, and a low fixed temperature (this is a scoring task,
// not creative writing).
func (pb *PromptBuilder) BuildGenerationRequest(req *models.ScoreRequest) (*GenerationRequest, error) {
	if len(strings.TrimSpace(req.CVText)) < minCVLength {
		return nil, &ValidationError{
			Code:    "cv_too_short",
			Message: fmt.Sprintf("cv_text must be at least %d characters", minCVLength),
		}
	}

	lang := "fr"
	if req.Lang == "en" {
		lang = "en"
	}

	country := req.Country
	if country == "" {
		country = "CH"
	}

	instructions := instructionsFR
	notSpecified := "non précisé"
	if lang == "en" {
		instructions = instructionsEN
		notSpecified = "not specified"
	}

	jobTitle := strings.TrimSpace(req.JobTitle)
	if jobTitle == "" {
		jobTitle = notSpecified
	}

	return &GenerationRequest{
		Model:        pb.model,
		Instructions: instructions,
		Input: []InputMessage{
			{Role: "user", Content: buildUserMessage(lang, country, jobTitle, req.CVText)},
		},
		OutputFormat: &OutputFormat{
			Type:   "json_schema",
			Name:   "cv_evaluation",
			Strict: true,
			Schema: BuildEvaluationJSONSchema(),
		},
		Temperature: pb.temperature,
	}, nil
}

func buildUserMessage(lang, country, jobTitle, cvText string) string {
	var b strings.Builder
	b.WriteString("Language: ")
	b.WriteString(lang)
	b.WriteString("\nTarget country: ")
	b.WriteString(country)
	b.WriteString("\nTarget role: ")
	b.WriteString(jobTitle)
	b.WriteString("\n\nResume to evaluate:\n")
	b.WriteString(cvText)
	return b.String()
}
