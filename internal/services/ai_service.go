// file: internal/services/ai_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dsavault/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// analysisSchema constrains the model output; anything that fails validation
// is retried rather than stored.
const analysisSchema = `{
	"type": "object",
	"properties": {
		"intuition": {"type": "string", "minLength": 1},
		"steps": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"minItems": 1
		},
		"timeComplexity": {"type": "string", "minLength": 1},
		"spaceComplexity": {"type": "string", "minLength": 1}
	},
	"required": ["intuition", "steps", "timeComplexity", "spaceComplexity"],
	"additionalProperties": false
}`

// textGenerator abstracts the Gemini call so tests can substitute a fake
type textGenerator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// aiServiceImpl implements AIService over the Gemini API
type aiServiceImpl struct {
	generator textGenerator
	schema    *jsonschema.Schema
	cfg       *config.AIConfig
	logger    *zap.Logger
}

// NewAIService creates the Gemini-backed analysis service
func NewAIService(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (AIService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newAIService(&geminiGenerator{client: client, model: cfg.Model}, cfg, logger)
}

func newAIService(gen textGenerator, cfg *config.AIConfig, logger *zap.Logger) (AIService, error) {
	schema, err := compileAnalysisSchema()
	if err != nil {
		return nil, err
	}
	return &aiServiceImpl{
		generator: gen,
		schema:    schema,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func compileAnalysisSchema() (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(analysisSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema://solution-analysis.json", parsed); err != nil {
		return nil, fmt.Errorf("failed to add analysis schema: %w", err)
	}
	compiled, err := compiler.Compile("schema://solution-analysis.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile analysis schema: %w", err)
	}
	return compiled, nil
}

// AnalyzeSolution asks the model to explain a solution and validates the
// structured output. Transient failures and malformed responses are retried
// with exponential backoff up to the configured attempt limit.
func (s *aiServiceImpl) AnalyzeSolution(ctx context.Context, req *AnalyzeRequest) (*SolutionAnalysis, error) {
	if req == nil || req.Code == "" {
		return nil, NewValidationError("code is required for analysis", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	prompt := buildAnalysisPrompt(req)

	var analysis *SolutionAnalysis
	operation := func() error {
		raw, err := s.generator.generate(ctx, prompt)
		if err != nil {
			return err
		}

		parsed, err := s.parseAnalysis(raw)
		if err != nil {
			s.logger.Warn("Model returned invalid analysis, retrying", zap.Error(err))
			return err
		}
		analysis = parsed
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.cfg.MaxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, NewBusinessError("solution analysis unavailable", "AI_ANALYSIS_FAILED")
	}
	return analysis, nil
}

func (s *aiServiceImpl) parseAnalysis(raw string) (*SolutionAnalysis, error) {
	raw = stripCodeFences(raw)

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := s.schema.Validate(value); err != nil {
		return nil, fmt.Errorf("response failed schema validation: %w", err)
	}

	var analysis SolutionAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &analysis, nil
}

func buildAnalysisPrompt(req *AnalyzeRequest) string {
	var b strings.Builder
	b.WriteString("You are a DSA mentor. Analyze the following solution and respond with JSON only, ")
	b.WriteString(`matching {"intuition": string, "steps": [string], "timeComplexity": string, "spaceComplexity": string}.`)
	b.WriteString("\n\nProblem: ")
	b.WriteString(req.Title)
	b.WriteString("\n")
	b.WriteString(req.Description)
	b.WriteString("\n\nLanguage: ")
	b.WriteString(req.Language)
	b.WriteString("\n\nSolution:\n")
	b.WriteString(req.Code)
	return b.String()
}

// stripCodeFences removes a markdown fence the model sometimes wraps its JSON
// in despite the instructions.
func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

// ===============================
// GEMINI GENERATOR
// ===============================

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return result.Text(), nil
}
