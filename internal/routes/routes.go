package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crisiswatch/api/internal/config"
	"github.com/crisiswatch/api/internal/features/ai"
	"github.com/crisiswatch/api/internal/features/auth"
	"github.com/crisiswatch/api/internal/features/dashboard"
	"github.com/crisiswatch/api/internal/features/media"
	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/features/shelters"
	"github.com/crisiswatch/api/internal/features/users"
	"github.com/crisiswatch/api/internal/pkg/observability"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, metrics *observability.Metrics) {
	// API v1 group
	api := router.Group("/api/v1")

	// Features that downstream consumers read from return their
	// repositories; the dashboard aggregates across all of them.
	auth.RegisterRoutes(api, db, cfg)
	reportsRepo := reports.RegisterRoutes(api, db, metrics)
	sheltersRepo := shelters.RegisterRoutes(api, db)
	aiRepo := ai.RegisterRoutes(api, db, reportsRepo, metrics)
	dashboard.RegisterRoutes(api, cfg, reportsRepo, sheltersRepo, aiRepo, metrics)
	users.RegisterRoutes(api, db)
	media.RegisterRoutes(api, cfg)
}
