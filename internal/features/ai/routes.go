package ai

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/middleware"
	"github.com/crisiswatch/api/internal/pkg/observability"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, reportsRepo *reports.Repository, metrics *observability.Metrics) *Repository {
	repo := NewRepository(db)
	lifecycle := reports.NewLifecycle(reportsRepo, metrics)
	analyzer := NewAnalyzer(reportsRepo, lifecycle, repo, KeywordScorer{})
	handler := NewHandler(analyzer, repo)

	group := router.Group("/ai")
	{
		group.POST("/analyze", middleware.Auth(), middleware.AdminOnly(), handler.Analyze)
		group.GET("/updates", handler.ListUpdates)
	}

	return repo
}
