package services

import (
	"strings"

	"github.com/goccy/go-json"
)

// providerResponse covers the closed set of known response shapes. Fields a
// given provider version does not emit simply stay zero.
type providerResponse struct {
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
}

type outputItem struct {
	Content []contentChunk `json:"content"`
}

type contentChunk struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// textualChunkKinds lists every content-chunk kind that carries generated
// text. Both labels appear depending on provider version.
var textualChunkKinds = map[string]bool{
	"output_text": true,
	"text":        true,
}

// ExtractOutputText locates the generated text inside a shape-variable
// provider response. Shapes are tried in fixed priority order: the top-level
// convenience field first, then textual content chunks concatenated in
// encounter order. When neither yields text the full raw response is kept on
// the error for diagnosis.
func ExtractOutputText(raw []byte) (string, error) {
	var resp providerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &ExtractionError{Raw: raw}
	}

	if text := strings.TrimSpace(resp.OutputText); text != "" {
		return text, nil
	}

	var parts []string
	for _, item := range resp.Output {
		for _, chunk := range item.Content {
			if textualChunkKinds[chunk.Type] {
				parts = append(parts, chunk.Text)
			}
		}
	}
	if text := strings.TrimSpace(strings.Join(parts, "")); text != "" {
		return text, nil
	}

	return "", &ExtractionError{Raw: raw}
}
