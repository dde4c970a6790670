package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/auth"
	"github.com/rp-labs/storefront-api/cart"
	"github.com/rp-labs/storefront-api/products"
	"github.com/rp-labs/storefront-api/users"
)

// Deps carries the wired services the route groups hand to their handlers.
type Deps struct {
	Products  *products.Service
	Users     *users.Service
	Cart      *cart.Store
	Session   *auth.Session
	JWTSecret []byte
}

// SetupRoutes is the single entry‐point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// 1️⃣ Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// 2️⃣ Product browsing (public) + product writes (JWT‐protected)
	SetupProductRoutes(r, deps)

	// 3️⃣ Local cart routes
	SetupCartRoutes(r, deps)

	// 4️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, deps)

	// 5️⃣ Admin routes (JWT + admin role)
	SetupAdminRoutes(r, deps)
}
