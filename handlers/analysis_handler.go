package handlers

import (
	"log"
	"net/http"

	"newscred-backend/models"
	"newscred-backend/service"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles HTTP requests for news analysis
type AnalysisHandler struct {
	analysisService  *service.AnalysisService
	factCheckService *service.FactCheckService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, factCheckService *service.FactCheckService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService:  analysisService,
		factCheckService: factCheckService,
	}
}

// AnalyzeNews handles POST /analyze-news
func (h *AnalysisHandler) AnalyzeNews(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "News content is required.",
		})
		return
	}

	ctx := c.Request.Context()

	result, err := h.analysisService.Analyze(ctx, req.Content, req.URL)
	if err != nil {
		log.Printf("[%s] Error during AI analysis: %v", RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "An internal server error occurred during AI analysis: " + err.Error(),
		})
		return
	}

	// Enrichment only: failures inside Verify are logged and absorbed
	h.factCheckService.Verify(ctx, req.Content, result)

	c.JSON(http.StatusOK, result)
}
