package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/products"
)

// GetProducts lists products, optionally filtered by category
// (case-insensitive). The read path never fails: a backend fault comes back
// as an empty list.
func GetProducts(svc *products.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if category := c.Query("category"); category != "" {
			c.JSON(http.StatusOK, svc.FetchByCategory(c.Request.Context(), category))
			return
		}
		c.JSON(http.StatusOK, svc.FetchAll(c.Request.Context()))
	}
}
