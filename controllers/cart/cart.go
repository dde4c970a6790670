package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/cart"
	"github.com/rp-labs/storefront-api/products"
)

type AddToCartInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int    `json:"qty"`
}

// GetCart returns the cart contents with the derived count and subtotal.
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items":    store.Items(),
			"count":    store.Count(),
			"subtotal": store.Subtotal().StringFixed(2),
		})
	}
}

// AddToCart merges qty units of a product into the cart. The line item
// snapshots title, price and image as they are right now.
func AddToCart(store *cart.Store, svc *products.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := svc.FetchByID(c.Request.Context(), input.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, store.Add(product, input.Qty))
	}
}

// UpdateCartQty sets a line item's quantity; zero or below removes it.
func UpdateCartQty(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("product_id")

		var input struct {
			Qty *int `json:"qty" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, store.UpdateQty(productID, *input.Qty))
	}
}

// DeleteCartItem removes one line item.
func DeleteCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.UpdateQty(c.Param("product_id"), 0))
	}
}

// ClearCart empties the cart unconditionally.
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GetCartCount returns the badge number only.
func GetCartCount(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": store.Count()})
	}
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, products.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong"})
}
