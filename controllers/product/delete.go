package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/products"
)

// DeleteProduct removes a single product after the delete policy check.
func DeleteProduct(svc *products.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		if err := svc.Delete(c.Request.Context(), id, c.GetString("user_id"), c.GetString("role")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// DeleteMultipleProducts removes a batch. For non-admins the whole batch is
// rejected before any delete if a single id is not owned by the caller.
func DeleteMultipleProducts(svc *products.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IDs []string `json:"ids" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := svc.DeleteMultiple(c.Request.Context(), input.IDs, c.GetString("user_id"), c.GetString("role")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Products deleted successfully", "deletedCount": len(input.IDs)})
	}
}
