// Package llm - extractor.go provides LLM-based structured resume extraction.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/types"
)

// resumeSchema validates the extractor's JSON output before it is trusted.
// Output that fails validation is treated the same as an unavailable
// extractor, never as a fatal error.
const resumeSchema = `{
  "type": "object",
  "properties": {
    "skills": {"type": "array", "items": {"type": "string"}},
    "experienceYears": {"type": "number", "minimum": 0},
    "education": {"type": "array", "items": {"type": "string"}},
    "jobTitles": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string"}
  },
  "required": ["skills"]
}`

// ResumeExtractor turns free resume text into a StructuredResume via the
// generative model.
type ResumeExtractor struct {
	client Client
	schema *gojsonschema.Schema
	log    *zap.Logger
}

// NewResumeExtractor creates a resume extractor over the given client.
func NewResumeExtractor(client Client, log *zap.Logger) (*ResumeExtractor, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile resume schema: %w", err)
	}

	return &ResumeExtractor{client: client, schema: schema, log: log}, nil
}

// buildResumePrompt constructs the extraction prompt for resume text.
func buildResumePrompt(resumeText string) string {
	var sb strings.Builder
	sb.WriteString("You are a professional resume parser. Extract structured data from the provided resume text into JSON format.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "skills": ["skill1", "skill2"],
  "experienceYears": (number),
  "education": ["degree1", "degree2"],
  "jobTitles": ["title1", "title2"],
  "summary": "brief summary"
}`)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize beyond the summary field.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("Resume text:\n\"\"\"\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// Extract parses resume text into a StructuredResume. A nil result with a
// non-nil error signals "unavailable"; callers fall back to the stored
// profile record and must not fail the request.
func (e *ResumeExtractor) Extract(ctx context.Context, resumeText string) (*types.StructuredResume, error) {
	raw, err := e.client.GenerateJSON(ctx, buildResumePrompt(resumeText))
	if err != nil {
		return nil, fmt.Errorf("resume extraction failed: %w", err)
	}

	structured, err := e.parse(raw)
	if err != nil {
		e.log.Warn("resume extractor returned malformed output", zap.Error(err))
		return nil, err
	}
	return structured, nil
}

// parse validates and unmarshals the extractor's JSON output.
func (e *ResumeExtractor) parse(raw string) (*types.StructuredResume, error) {
	result, err := e.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("extractor output is not valid JSON: %w", err)
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, fmt.Errorf("extractor output failed schema validation: %s", strings.Join(issues, "; "))
	}

	var structured types.StructuredResume
	if err := json.Unmarshal([]byte(raw), &structured); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extractor output: %w", err)
	}
	return &structured, nil
}
