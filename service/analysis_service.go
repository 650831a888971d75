package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"newscred-backend/models"
)

// AnalysisService performs the AI credibility assessment of news content
type AnalysisService struct {
	generator TextGenerator
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithGenerator sets the text generator
func WithGenerator(g TextGenerator) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.generator = g
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const standardDisclaimer = "This analysis is based on the provided text and URL. For full fact-checking, independent verification from multiple trusted sources is recommended."

// The three fallback results are observably distinct: callers and tests
// rely on which failure produced the default.
const (
	noJSONExplanation      = "AI content analysis failed: No JSON string found in Gemini's response."
	noJSONDisclaimer       = "AI content analysis failed. For full fact-checking, independent verification from multiple trusted sources is recommended."
	malformedExplanation   = "AI content analysis returned malformed JSON."
	malformedDisclaimer    = "AI content analysis returned malformed JSON. For full fact-checking, independent verification from multiple trusted sources is recommended."
	missingKeysExplanation = "AI content analysis returned an unexpected structure (missing keys)."
	missingKeysDisclaimer  = "AI content analysis returned an unexpected structure. For full fact-checking, independent verification from multiple trusted sources is recommended."
)

var requiredResultKeys = []string{"credibilityScore", "classification", "explanation", "details"}

const analysisPromptTemplate = `You are an AI-powered fake news detection system. Analyze the following news content and, if provided, its source URL, for credibility.
Focus on:
- **Linguistic Analysis:** Tone (sensational, neutral, objective), use of emotionally charged language, grammar, spelling, stylistic inconsistencies.
- **Claim Verifiability (internal):** Are claims presented as facts without evidence? Are sources cited (even if not externally verifiable by you)?
- **Bias:** Is there a clear slant or agenda?
- **Completeness:** Does the article present a balanced view or omit crucial context?
- **Source Reliability (if URL provided):** Comment on the potential reliability suggested by the URL's domain structure (e.g., unusual TLDs, suspicious domain names).

Provide a structured JSON response with the following fields. Ensure the JSON is valid and contains ONLY the JSON object, without any surrounding text or markdown formatting.
{
    "credibilityScore": [integer 0-100, where 0 is highly fake, 100 is highly credible],
    "classification": ["real", "fake", "uncertain"],
    "explanation": "A concise explanation of why this score and classification were given, highlighting key linguistic cues, biases, or lack of verifiable claims.",
    "details": {
        "sourceReliability": [integer 0-100],
        "contentAnalysis": [integer 0-100],
        "factChecking": [integer 0-100],
        "linguisticAnalysis": [integer 0-100]
    },
    "disclaimer": "%s"
}

News Content:
"%s"

News URL (Optional):
"%s"

Your response MUST be a valid JSON object and nothing else.`

// Analyze sends the content to the model and parses the structured
// credibility verdict. All parse and validation failures are absorbed into
// a fixed default result; only a failed model call returns an error.
func (s *AnalysisService) Analyze(ctx context.Context, content, url string) (*models.AnalysisResult, error) {
	if s.generator == nil {
		return nil, errors.New("text generator not set")
	}

	urlText := url
	if urlText == "" {
		urlText = "Not provided"
	}
	prompt := fmt.Sprintf(analysisPromptTemplate, standardDisclaimer, content, urlText)

	responseText, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("credibility analysis call failed: %w", err)
	}

	return parseAnalysisResponse(responseText), nil
}

// parseAnalysisResponse extracts the JSON object from the raw model output.
// The model is asked for bare JSON but routinely wraps it in prose or
// markdown fences, so the candidate payload is the substring between the
// first '{' and the last '}'. Known limitation: a '}' inside a string value
// after the closing brace breaks this, but the heuristic is a compatibility
// contract and stays as-is.
func parseAnalysisResponse(responseText string) *models.AnalysisResult {
	jsonStart := strings.Index(responseText, "{")
	jsonEnd := strings.LastIndex(responseText, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		log.Printf("Warning: model response did not contain a recognizable JSON object")
		return fallbackResult(noJSONExplanation, noJSONDisclaimer)
	}

	jsonString := responseText[jsonStart : jsonEnd+1]

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonString), &raw); err != nil {
		log.Printf("Failed to parse JSON from model response: %v", err)
		return fallbackResult(malformedExplanation, malformedDisclaimer)
	}

	for _, key := range requiredResultKeys {
		if _, ok := raw[key]; !ok {
			log.Printf("Warning: analysis result missing expected key %q", key)
			return fallbackResult(missingKeysExplanation, missingKeysDisclaimer)
		}
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		log.Printf("Failed to decode analysis result: %v", err)
		return fallbackResult(malformedExplanation, malformedDisclaimer)
	}

	return &result
}

// fallbackResult is the fixed neutral verdict substituted when the model
// output cannot be used
func fallbackResult(explanation, disclaimer string) *models.AnalysisResult {
	return &models.AnalysisResult{
		CredibilityScore: 50,
		Classification:   models.ClassificationUncertain,
		Explanation:      explanation,
		Details: models.AnalysisDetails{
			SourceReliability:  50,
			ContentAnalysis:    50,
			FactChecking:       50,
			LinguisticAnalysis: 50,
		},
		Disclaimer: disclaimer,
	}
}
