package ai

import (
	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/pkg/response"
)

type Handler struct {
	analyzer *Analyzer
	repo     *Repository
}

func NewHandler(analyzer *Analyzer, repo *Repository) *Handler {
	return &Handler{analyzer: analyzer, repo: repo}
}

// Analyze godoc
// @Summary Trigger AI analysis of recent reports
// @Description Score reports from the last 24 hours and record per-city updates (admin only)
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=AnalyzeResult}
// @Failure 403 {object} response.ErrorResponse
// @Router /ai/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	result, err := h.analyzer.Run(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "AI analysis failed", "ANALYSIS_FAILED")
		return
	}

	response.Success(c, result)
}

// ListUpdates godoc
// @Summary List AI analysis updates
// @Tags ai
// @Produce json
// @Param region query string false "Filter by region kind" Enums(city,country,world)
// @Success 200 {object} response.SuccessResponse{data=[]Update}
// @Router /ai/updates [get]
func (h *Handler) ListUpdates(c *gin.Context) {
	updates, err := h.repo.List(c.Request.Context(), c.Query("region"), 50)
	if err != nil {
		response.DatabaseError(c, "Failed to list updates")
		return
	}

	response.Success(c, updates)
}
