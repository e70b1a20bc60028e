package reports

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crisiswatch/api/internal/middleware"
	"github.com/crisiswatch/api/internal/pkg/observability"
	"github.com/crisiswatch/api/internal/pkg/ratelimit"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, metrics *observability.Metrics) *Repository {
	repo := NewRepository(db)
	lifecycle := NewLifecycle(repo, metrics)
	handler := NewHandler(lifecycle, repo)

	// Submissions are throttled per user to keep one panicked (or
	// malicious) reporter from burying the queue.
	submitLimiter := ratelimit.New(10, time.Minute)

	group := router.Group("/reports")
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.POST("", middleware.Auth(), ratelimit.UserBasedMiddleware(submitLimiter), handler.Submit)
		group.PUT("/:id/status", middleware.Auth(), middleware.AdminOnly(), handler.UpdateStatus)
		group.PUT("/:id/ai", middleware.Auth(), middleware.AdminOnly(), handler.ApplyScore)
	}

	return repo
}
