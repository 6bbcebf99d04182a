package services

import "fmt"

// ValidationError rejects bad scoring input before any network call is made.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError carries a non-success response from the generation provider.
// Body is surfaced to the operator as-is.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// ExtractionError means no usable text was found anywhere in the provider
// response. Raw retains the full response for diagnosis; it is never silently
// discarded.
type ExtractionError struct {
	Raw []byte
}

func (e *ExtractionError) Error() string {
	return "no usable text found in provider response"
}

// ParseError means the extracted text was not valid JSON. Raw keeps the text
// for operator diagnosis, not for end-user display.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse evaluation output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError means the parsed output does not conform to the schema the
// generation was requested with.
type SchemaError struct {
	Raw string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("evaluation output does not match schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
