package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/rp-labs/storefront-api/controllers/user"
	"github.com/rp-labs/storefront-api/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(deps.JWTSecret))
	{
		userGroup.GET("", userControllers.GetUser(deps.Users))
		userGroup.DELETE("", userControllers.DeleteAccount(deps.Session))
	}
}
