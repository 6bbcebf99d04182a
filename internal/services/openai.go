package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// GenerationRequest is the wire shape of one schema-constrained generation
// call.
type GenerationRequest struct {
	Model        string         `json:"model"`
	Instructions string         `json:"instructions"`
	Input        []InputMessage `json:"input"`
	OutputFormat *OutputFormat  `json:"output_format"`
	Temperature  float32        `json:"temperature"`
}

type InputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OutputFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type OpenAIService interface {
	GenerateEvaluation(ctx context.Context, req *GenerationRequest) ([]byte, error)
}

type openAIService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIService(apiKey, baseURL string, timeout time.Duration) OpenAIService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateEvaluation posts one generation request and returns the raw
// response body. The response shape is not stable across provider versions,
// so it stays opaque here; the extractor owns it. A failed call is terminal,
// never retried.
func (s *openAIService) GenerateEvaluation(ctx context.Context, genReq *GenerationRequest) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	log.Printf("🤖 [%s] Generation request: model=%s bytes=%d", reqID, genReq.Model, len(body))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generation provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	log.Printf("🤖 [%s] Provider responded: status=%d bytes=%d elapsed=%dms",
		reqID, resp.StatusCode, len(raw), time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return raw, nil
}
