package shelters

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crisiswatch/api/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	group := router.Group("/shelters")
	{
		group.GET("", handler.List)
		group.POST("", middleware.Auth(), middleware.AdminOnly(), handler.Create)
	}

	return repo
}
