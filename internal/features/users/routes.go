package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crisiswatch/api/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	group := router.Group("/users")
	group.Use(middleware.Auth(), middleware.AdminOnly())
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
	}
}
