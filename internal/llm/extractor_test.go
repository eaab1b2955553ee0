package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClient returns a scripted response for extractor tests.
type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Close() error { return nil }

func TestResumeExtractor_Extract(t *testing.T) {
	client := &fakeClient{response: `{
		"skills": ["React", "Node.js"],
		"experienceYears": 5,
		"education": ["BSc Computer Science"],
		"jobTitles": ["Frontend Developer"],
		"summary": "Frontend developer with 5 years of experience"
	}`}

	extractor, err := NewResumeExtractor(client, zap.NewNop())
	require.NoError(t, err)

	structured, err := extractor.Extract(context.Background(), "resume text here")
	require.NoError(t, err)

	assert.Equal(t, []string{"React", "Node.js"}, structured.Skills)
	assert.Equal(t, 5.0, structured.ExperienceYears)
	assert.Equal(t, []string{"Frontend Developer"}, structured.JobTitles)
	assert.Contains(t, client.prompt, "resume text here")
}

func TestResumeExtractor_ProviderFailure(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("provider unavailable")}

	extractor, err := NewResumeExtractor(client, zap.NewNop())
	require.NoError(t, err)

	structured, err := extractor.Extract(context.Background(), "resume text")
	assert.Error(t, err)
	assert.Nil(t, structured)
}

func TestResumeExtractor_MalformedOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "sorry, I cannot parse this resume"},
		{"wrong types", `{"skills": "React", "experienceYears": "five"}`},
		{"missing skills", `{"experienceYears": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewResumeExtractor(&fakeClient{response: tt.response}, zap.NewNop())
			require.NoError(t, err)

			structured, err := extractor.Extract(context.Background(), "resume text")
			assert.Error(t, err)
			assert.Nil(t, structured)
		})
	}
}

func TestResumeExtractor_RequiresClient(t *testing.T) {
	_, err := NewResumeExtractor(nil, zap.NewNop())
	assert.Error(t, err)
}

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONBlock(`  {"a":1}  `))
}
