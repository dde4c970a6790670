package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rp-labs/storefront-api/auth"
	"github.com/rp-labs/storefront-api/users"
)

// GET /user
func GetUser(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := svc.Get(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

type UpdateRoleInput struct {
	UID  string `json:"uid" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// PUT /admin/users/role, admin-gated by the route group.
func UpdateUserRole(svc *users.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateRoleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := svc.UpdateRole(c.Request.Context(), input.UID, input.Role); err != nil {
			if errors.Is(err, users.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
	}
}

type DeleteAccountInput struct {
	Password string `json:"password"`
}

// DELETE /user removes the auth identity first, then the profile record.
func DeleteAccount(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DeleteAccountInput
		// Body is optional; only password identities need it.
		_ = c.ShouldBindJSON(&input)

		err := session.DeleteAccountFor(c.Request.Context(), c.GetString("user_id"), input.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
