package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/rp-labs/storefront-api/controllers/product"
	userControllers "github.com/rp-labs/storefront-api/controllers/user"
	"github.com/rp-labs/storefront-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires a valid
// session token carrying the admin role.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(deps.JWTSecret), middleware.RequireAdmin)
	{
		// ─────────── User Management ───────────
		adminGroup.PUT("/users/role", userControllers.UpdateUserRole(deps.Users))

		// ─────────── Product Management ───────────
		adminGroup.GET("/products/export-excel", productControllers.ExportProductsToExcel(deps.Products))
	}
}
