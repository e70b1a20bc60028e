package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crisiswatch/api/internal/config"
	"github.com/crisiswatch/api/internal/middleware"
)

// RegisterRoutes wires the auth feature and returns its repository so
// other features can resolve users.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) *Repository {
	repo := NewRepository(db)
	idp := NewHTTPIdentityProvider(cfg.AuthProviderURL)
	handler := NewHandler(repo, idp)

	group := router.Group("/auth")
	{
		group.POST("/session", handler.Session)

		authed := group.Group("")
		authed.Use(middleware.Auth())
		{
			authed.GET("/me", handler.Me)
			authed.PUT("/me/city", handler.UpdatePreferredCity)
			authed.DELETE("/logout", handler.Logout)
		}
	}

	return repo
}
