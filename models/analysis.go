package models

// Classification is the headline credibility verdict
type Classification string

const (
	ClassificationReal      Classification = "real"
	ClassificationFake      Classification = "fake"
	ClassificationUncertain Classification = "uncertain"
)

// AnalysisRequest represents the request body for /analyze-news
type AnalysisRequest struct {
	Content string `json:"content"`
	URL     string `json:"url"`
}

// AnalysisDetails holds the per-dimension sub-scores (0-100)
type AnalysisDetails struct {
	SourceReliability  int `json:"sourceReliability"`
	ContentAnalysis    int `json:"contentAnalysis"`
	FactChecking       int `json:"factChecking"`
	LinguisticAnalysis int `json:"linguisticAnalysis"`
}

// AnalysisResult is the full credibility verdict returned to the client.
// The fact-check fields are only populated when the external registry
// returned a matching verdict.
type AnalysisResult struct {
	CredibilityScore      int             `json:"credibilityScore"`
	Classification        Classification  `json:"classification"`
	Explanation           string          `json:"explanation"`
	Details               AnalysisDetails `json:"details"`
	Disclaimer            string          `json:"disclaimer"`
	ClassificationDisplay string          `json:"classificationDisplay,omitempty"`
	FactCheckVerdict      string          `json:"factCheckVerdict,omitempty"`
	FactCheckURL          string          `json:"factCheckUrl,omitempty"`
	FactCheckPublisher    string          `json:"factCheckPublisher,omitempty"`
}

// FactCheckVerdict is the verdict for a single claim as reported by the
// external fact-check registry. Transient within a request.
type FactCheckVerdict struct {
	Verdict   string `json:"verdict"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
}
