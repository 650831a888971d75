package config

import (
	"log"
	"os"
)

// Default endpoints and model. The fact check URL is overridable so tests
// can point the client at a local server.
const (
	DefaultGeminiModel  = "gemini-2.0-flash"
	DefaultFactCheckURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"
	DefaultPort         = "8080"
)

// Config holds all runtime configuration, read once at startup and passed
// into constructors. No component reads the environment after this.
type Config struct {
	Port            string
	GeminiAPIKey    string
	GeminiModel     string
	FactCheckAPIKey string
	FactCheckAPIURL string
}

// Load reads configuration from environment variables. Missing API keys
// degrade functionality at request time but never prevent startup.
func Load() Config {
	cfg := Config{
		Port:            os.Getenv("PORT"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		FactCheckAPIKey: os.Getenv("GOOGLE_FACT_CHECK_API_KEY"),
		FactCheckAPIURL: os.Getenv("GOOGLE_FACT_CHECK_API_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	if cfg.FactCheckAPIURL == "" {
		cfg.FactCheckAPIURL = DefaultFactCheckURL
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set")
	}
	if cfg.FactCheckAPIKey == "" {
		log.Println("Warning: GOOGLE_FACT_CHECK_API_KEY not set, external fact-checking disabled")
	}

	return cfg
}
