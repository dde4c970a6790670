package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/rp-labs/storefront-api/controllers/authentication"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", authControllers.Signup(deps.Session, deps.JWTSecret))
		authGroup.POST("/login", authControllers.Login(deps.Session, deps.JWTSecret))
		authGroup.POST("/google", authControllers.GoogleLogin(deps.Session, deps.JWTSecret))
		authGroup.POST("/reset-password", authControllers.ResetPassword(deps.Session))
	}
}
