package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/rp-labs/storefront-api/controllers/product"
	"github.com/rp-labs/storefront-api/middleware"
)

// SetupProductRoutes registers all “/products/*” endpoints. Browsing is
// public; every mutation requires a valid session token, and the access
// layer applies the ownership policy on top.
func SetupProductRoutes(r *gin.Engine, deps Deps) {
	productGroup := r.Group("/products")
	{
		// ──────────────── Browse Products ────────────────
		productGroup.GET("", productControllers.GetProducts(deps.Products))
		productGroup.GET("/:id", productControllers.GetProductByID(deps.Products))

		// ──────────────── Product Writes ────────────────
		protected := productGroup.Group("")
		protected.Use(middleware.ValidateToken(deps.JWTSecret))
		{
			protected.POST("", productControllers.CreateProduct(deps.Products))
			protected.PUT("/:id", productControllers.UpdateProduct(deps.Products))
			protected.DELETE("/:id", productControllers.DeleteProduct(deps.Products))
			protected.POST("/batch-delete", productControllers.DeleteMultipleProducts(deps.Products))
		}
	}
}
