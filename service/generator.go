package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// TextGenerator abstracts a single prompt/response round-trip against a
// generative model. Implemented by GeminiGenerator in production and by
// stubs in tests.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var (
	ErrNoCandidates = errors.New("model returned no candidates")
	ErrEmptyContent = errors.New("model returned empty content")
)

// GeminiGenerator implements TextGenerator over the Gemini API client.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator creates a generator bound to a specific model name
func NewGeminiGenerator(client *genai.Client, modelName string) *GeminiGenerator {
	return &GeminiGenerator{
		client:    client,
		modelName: modelName,
	}
}

// GenerateText sends a single prompt and returns the concatenated text of
// the first candidate's parts
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client not set")
	}

	model := g.client.GenerativeModel(g.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason != genai.FinishReasonStop && candidate.FinishReason != genai.FinishReasonUnspecified {
		log.Printf("Warning: candidate finished with reason: %s", candidate.FinishReason)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyContent
	}

	var responseText strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	result := responseText.String()
	if result == "" {
		return "", ErrEmptyContent
	}

	return result, nil
}
