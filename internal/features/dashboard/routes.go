package dashboard

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/config"
	"github.com/crisiswatch/api/internal/features/ai"
	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/features/shelters"
	"github.com/crisiswatch/api/internal/pkg/observability"
)

func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config, reportsRepo *reports.Repository, sheltersRepo *shelters.Repository, aiRepo *ai.Repository, metrics *observability.Metrics) {
	scope := HomeScope{
		City:    cfg.HomeCity,
		Country: cfg.HomeCountry,
	}
	if cfg.HomeLat != 0 || cfg.HomeLng != 0 {
		scope.Ref = &reports.Location{Lat: cfg.HomeLat, Lng: cfg.HomeLng}
	}

	handler := NewHandler(reportsRepo, sheltersRepo, aiRepo, scope, cfg.RequestTimeout, metrics)

	// Background refresh keeps a warm snapshot so dashboard requests
	// normally skip the store reads entirely.
	session := NewSession(handler.buildSnapshot, cfg.RefreshInterval,
		WithTimeout(cfg.RequestTimeout),
		WithMetrics(metrics),
	)
	handler.session = session
	go session.Run(context.Background())

	group := router.Group("/dashboard")
	{
		group.GET("/data", handler.Data)
	}
}
