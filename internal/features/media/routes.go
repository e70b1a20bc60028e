package media

import (
	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/config"
	"github.com/crisiswatch/api/internal/middleware"
	"github.com/crisiswatch/api/internal/pkg/cloudinary"
	"github.com/crisiswatch/api/internal/pkg/logger"
)

// RegisterRoutes wires the media feature. When Cloudinary credentials
// are absent the routes are skipped and report drafts simply carry no
// imagery.
func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config) {
	uploads, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		logger.Warn("media uploads disabled: %v", err)
		return
	}

	handler := NewHandler(uploads)

	group := router.Group("/media")
	group.Use(middleware.Auth())
	{
		group.POST("/upload", handler.Upload)
	}
}
