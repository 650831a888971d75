package main

import (
	"context"
	"log"

	"newscred-backend/config"
	"newscred-backend/handlers"
	"newscred-backend/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg := config.Load()

	// Initialize Gemini client
	geminiClient, err := initGemini(cfg)
	if err != nil {
		log.Fatal("Failed to initialize Gemini:", err)
	}
	defer geminiClient.Close()

	generator := service.NewGeminiGenerator(geminiClient, cfg.GeminiModel)

	// Initialize services
	analysisService := service.NewAnalysisService(
		service.WithGenerator(generator),
	)

	factCheckService := service.NewFactCheckService(
		service.FactCheckWithGenerator(generator),
		service.FactCheckWithAPIKey(cfg.FactCheckAPIKey),
		service.FactCheckWithAPIURL(cfg.FactCheckAPIURL),
	)

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService, factCheckService)

	// Setup Gin router
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(handlers.RequestIDMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.POST("/analyze-news", analysisHandler.AnalyzeNews)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initGemini(cfg config.Config) (*genai.Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
