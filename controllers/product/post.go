package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/products"
)

// CreateProduct stores a new product owned by the caller.
func CreateProduct(svc *products.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input products.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := svc.Create(c.Request.Context(), input, c.GetString("user_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
