package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"newscred-backend/models"
)

func registryResponse(rating, url, publisher string) string {
	return `{
		"claims": [
			{
				"claimReview": [
					{
						"textualRating": "` + rating + `",
						"url": "` + url + `",
						"publisher": {"name": "` + publisher + `"}
					}
				]
			}
		]
	}`
}

func baseResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		CredibilityScore: 60,
		Classification:   models.ClassificationUncertain,
		Explanation:      "Mixed signals in the text.",
		Details:          models.AnalysisDetails{SourceReliability: 60, ContentAnalysis: 60, FactChecking: 60, LinguisticAnalysis: 60},
		Disclaimer:       "d",
	}
}

func TestExtractClaim(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     string
	}{
		{"claim found", "The moon landing happened in 1969.", nil, "The moon landing happened in 1969."},
		{"claim with surrounding whitespace", "  A claim.  \n", nil, "A claim."},
		{"sentinel phrase", NoClaimSentinel, nil, ""},
		{"empty response", "   ", nil, ""},
		{"generator error absorbed", "", errors.New("model unavailable"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFactCheckService(FactCheckWithGenerator(&stubGenerator{response: tt.response, err: tt.err}))
			got := svc.ExtractClaim(context.Background(), "some news text")
			if got != tt.want {
				t.Errorf("Expected claim %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLookupSkipsWithoutAPIKey(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	svc := NewFactCheckService(FactCheckWithAPIURL(server.URL))

	if verdict := svc.Lookup(context.Background(), "a claim"); verdict != nil {
		t.Errorf("Expected nil verdict without API key, got %+v", verdict)
	}
	if hits != 0 {
		t.Errorf("Expected no registry calls without API key, got %d", hits)
	}
}

func TestLookupParsesRegistryResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "a claim" {
			t.Errorf("Expected query param 'a claim', got %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("Expected key param 'test-key', got %q", got)
		}
		if got := r.URL.Query().Get("languageCode"); got != "en" {
			t.Errorf("Expected languageCode 'en', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(registryResponse("False", "https://factcheck.example/1", "Snopes")))
	}))
	defer server.Close()

	svc := NewFactCheckService(
		FactCheckWithAPIKey("test-key"),
		FactCheckWithAPIURL(server.URL),
		FactCheckWithHTTPClient(server.Client()),
	)

	verdict := svc.Lookup(context.Background(), "a claim")
	if verdict == nil {
		t.Fatal("Expected a verdict, got nil")
	}
	if verdict.Verdict != "False" {
		t.Errorf("Expected verdict False, got %q", verdict.Verdict)
	}
	if verdict.URL != "https://factcheck.example/1" {
		t.Errorf("Unexpected verdict URL: %q", verdict.URL)
	}
	if verdict.Publisher != "Snopes" {
		t.Errorf("Expected publisher Snopes, got %q", verdict.Publisher)
	}
}

func TestLookupDefaultsPublisherToUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"claims":[{"claimReview":[{"textualRating":"False","url":"https://x.example"}]}]}`))
	}))
	defer server.Close()

	svc := NewFactCheckService(FactCheckWithAPIKey("test-key"), FactCheckWithAPIURL(server.URL))

	verdict := svc.Lookup(context.Background(), "a claim")
	if verdict == nil {
		t.Fatal("Expected a verdict, got nil")
	}
	if verdict.Publisher != "Unknown" {
		t.Errorf("Expected publisher Unknown, got %q", verdict.Publisher)
	}
}

func TestLookupAbsorbsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unparseable body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"no claims", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"claims":[]}`))
		}},
		{"claim without reviews", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"claims":[{"claimReview":[]}]}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := NewFactCheckService(FactCheckWithAPIKey("test-key"), FactCheckWithAPIURL(server.URL))
			if verdict := svc.Lookup(context.Background(), "a claim"); verdict != nil {
				t.Errorf("Expected nil verdict, got %+v", verdict)
			}
		})
	}
}

func TestApplyVerdict(t *testing.T) {
	tests := []struct {
		name        string
		verdict     string
		wantClass   models.Classification
		wantScore   int
		wantDisplay string
	}{
		{"false verdict", "False", models.ClassificationFake, 20, "FACT-CHECKED: FALSE"},
		{"debunked verdict", "Debunked by experts", models.ClassificationFake, 20, "FACT-CHECKED: DEBUNKED BY EXPERTS"},
		{"misinformation verdict", "Misinformation", models.ClassificationFake, 20, "FACT-CHECKED: MISINFORMATION"},
		{"mostly true verdict", "Mostly True", models.ClassificationReal, 80, "FACT-CHECKED: MOSTLY TRUE"},
		{"verified verdict", "Verified", models.ClassificationReal, 80, "FACT-CHECKED: VERIFIED"},
		{"unrecognized verdict", "Misleading", models.ClassificationUncertain, 60, "FACT-CHECKED: MISLEADING"},
		// Branch order: a verdict matching both keyword sets resolves to fake
		{"false outranks true", "False, though partly true", models.ClassificationFake, 20, "FACT-CHECKED: FALSE, THOUGH PARTLY TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFactCheckService()
			result := baseResult()
			verdict := &models.FactCheckVerdict{Verdict: tt.verdict, URL: "https://fc.example", Publisher: "Checker"}

			svc.ApplyVerdict(result, verdict)

			if result.Classification != tt.wantClass {
				t.Errorf("Expected classification %s, got %s", tt.wantClass, result.Classification)
			}
			if result.CredibilityScore != tt.wantScore {
				t.Errorf("Expected score %d, got %d", tt.wantScore, result.CredibilityScore)
			}
			if result.ClassificationDisplay != tt.wantDisplay {
				t.Errorf("Expected display %q, got %q", tt.wantDisplay, result.ClassificationDisplay)
			}
			if result.FactCheckVerdict != tt.verdict {
				t.Errorf("Expected factCheckVerdict %q, got %q", tt.verdict, result.FactCheckVerdict)
			}
			if result.FactCheckPublisher != "Checker" {
				t.Errorf("Expected publisher Checker, got %q", result.FactCheckPublisher)
			}
		})
	}
}

func TestApplyVerdictClampIsOneSided(t *testing.T) {
	svc := NewFactCheckService()

	// A score already below the fake ceiling is left alone
	result := baseResult()
	result.CredibilityScore = 5
	svc.ApplyVerdict(result, &models.FactCheckVerdict{Verdict: "False"})
	if result.CredibilityScore != 5 {
		t.Errorf("Expected score 5 to survive the min clamp, got %d", result.CredibilityScore)
	}

	// A score already above the real floor is left alone
	result = baseResult()
	result.CredibilityScore = 95
	svc.ApplyVerdict(result, &models.FactCheckVerdict{Verdict: "True"})
	if result.CredibilityScore != 95 {
		t.Errorf("Expected score 95 to survive the max clamp, got %d", result.CredibilityScore)
	}
}

func TestApplyVerdictPrependsExplanation(t *testing.T) {
	svc := NewFactCheckService()

	result := baseResult()
	svc.ApplyVerdict(result, &models.FactCheckVerdict{Verdict: "False"})
	want := "External fact-check confirms this claim is False. Mixed signals in the text."
	if result.Explanation != want {
		t.Errorf("Expected explanation %q, got %q", want, result.Explanation)
	}

	result = baseResult()
	svc.ApplyVerdict(result, &models.FactCheckVerdict{Verdict: "Misleading"})
	want = "External fact-check verdict: Misleading. Mixed signals in the text."
	if result.Explanation != want {
		t.Errorf("Expected explanation %q, got %q", want, result.Explanation)
	}
}

func TestVerifySentinelSkipsRegistry(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	svc := NewFactCheckService(
		FactCheckWithGenerator(&stubGenerator{response: NoClaimSentinel}),
		FactCheckWithAPIKey("test-key"),
		FactCheckWithAPIURL(server.URL),
	)

	result := baseResult()
	svc.Verify(context.Background(), "some news text", result)

	if hits != 0 {
		t.Errorf("Expected no registry calls after sentinel, got %d", hits)
	}
	if result.FactCheckVerdict != "" || result.ClassificationDisplay != "" {
		t.Errorf("Expected result untouched, got %+v", result)
	}
}

func TestVerifyMergesRegistryVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(registryResponse("False", "https://fc.example/2", "PolitiFact")))
	}))
	defer server.Close()

	svc := NewFactCheckService(
		FactCheckWithGenerator(&stubGenerator{response: "Vaccines cause autism."}),
		FactCheckWithAPIKey("test-key"),
		FactCheckWithAPIURL(server.URL),
	)

	result := baseResult()
	svc.Verify(context.Background(), "some news text", result)

	if result.Classification != models.ClassificationFake {
		t.Errorf("Expected classification fake, got %s", result.Classification)
	}
	if result.CredibilityScore > 20 {
		t.Errorf("Expected score clamped to <=20, got %d", result.CredibilityScore)
	}
	if result.FactCheckPublisher != "PolitiFact" {
		t.Errorf("Expected publisher PolitiFact, got %q", result.FactCheckPublisher)
	}
}
