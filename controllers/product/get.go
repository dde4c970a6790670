package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/products"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(svc *products.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		product, err := svc.FetchByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
