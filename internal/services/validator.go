package services

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"cvcoach/api/internal/models"
)

// ValidateEvaluation parses the extracted text and re-checks it against the
// exact schema the generation was requested with: field presence, types,
// numeric bounds, array cardinalities, no extra fields. The provider's own
// schema enforcement is never trusted; this check is authoritative. On
// success the parsed value is returned unchanged.
func ValidateEvaluation(text string) (*models.EvaluationResult, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	schema, err := compileEvaluationSchema()
	if err != nil {
		return nil, fmt.Errorf("compile evaluation schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &SchemaError{Raw: text, Err: err}
	}

	var result models.EvaluationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	return &result, nil
}

func compileEvaluationSchema() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildEvaluationJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("evaluation.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile("evaluation.json")
}
