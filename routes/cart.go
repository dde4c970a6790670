package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/rp-labs/storefront-api/controllers/cart"
)

// SetupCartRoutes registers all “/cart/*” endpoints. The cart is local
// device state with no identity attached, so no token gate applies.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(deps.Cart))
		cartGroup.GET("/count", cartControllers.GetCartCount(deps.Cart))
		cartGroup.GET("/events", cartControllers.CartEvents(deps.Cart))
		cartGroup.POST("", cartControllers.AddToCart(deps.Cart, deps.Products))
		cartGroup.PUT("/:product_id", cartControllers.UpdateCartQty(deps.Cart))
		cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.Cart))
		cartGroup.DELETE("", cartControllers.ClearCart(deps.Cart))
	}
}
