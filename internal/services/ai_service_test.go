// file: internal/services/ai_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"dsavault/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeGenerator) generate(context.Context, string) (string, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func newTestAIService(t *testing.T, gen textGenerator) AIService {
	t.Helper()
	svc, err := newAIService(gen, &config.AIConfig{
		Enabled:    true,
		Model:      "gemini-2.0-flash",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
	}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

const validAnalysisJSON = `{
	"intuition": "Use two pointers from both ends",
	"steps": ["Sort the array", "Move pointers inward"],
	"timeComplexity": "O(n log n)",
	"spaceComplexity": "O(1)"
}`

func analyzeRequest() *AnalyzeRequest {
	return &AnalyzeRequest{
		Title:       "Container With Most Water",
		Description: "Maximize the area",
		Code:        "def max_area(h): ...",
		Language:    "Python",
	}
}

func TestAnalyzeSolution_ValidResponse(t *testing.T) {
	svc := newTestAIService(t, &fakeGenerator{responses: []string{validAnalysisJSON}})

	analysis, err := svc.AnalyzeSolution(context.Background(), analyzeRequest())
	require.NoError(t, err)
	assert.Equal(t, "Use two pointers from both ends", analysis.Intuition)
	assert.Len(t, analysis.Steps, 2)
	assert.Equal(t, "O(1)", analysis.SpaceComplexity)
}

func TestAnalyzeSolution_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validAnalysisJSON + "\n```"
	svc := newTestAIService(t, &fakeGenerator{responses: []string{fenced}})

	analysis, err := svc.AnalyzeSolution(context.Background(), analyzeRequest())
	require.NoError(t, err)
	assert.Equal(t, "O(n log n)", analysis.TimeComplexity)
}

func TestAnalyzeSolution_RetriesInvalidJSON(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"not json at all", validAnalysisJSON}}
	svc := newTestAIService(t, gen)

	analysis, err := svc.AnalyzeSolution(context.Background(), analyzeRequest())
	require.NoError(t, err)
	assert.NotNil(t, analysis)
	assert.Equal(t, 2, gen.calls)
}

func TestAnalyzeSolution_RejectsSchemaViolation(t *testing.T) {
	// Missing required fields on every attempt.
	bad := `{"intuition": "something"}`
	gen := &fakeGenerator{responses: []string{bad, bad, bad}}
	svc := newTestAIService(t, gen)

	_, err := svc.AnalyzeSolution(context.Background(), analyzeRequest())
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "BUSINESS_ERROR"))
}

func TestAnalyzeSolution_RequiresCode(t *testing.T) {
	svc := newTestAIService(t, &fakeGenerator{})

	_, err := svc.AnalyzeSolution(context.Background(), &AnalyzeRequest{Title: "No code"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
