package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rp-labs/storefront-api/models"
)

// Claims is what the API trusts about a caller between requests.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// IssueToken signs a session JWT for the profile, valid for 24 hours.
func IssueToken(secret []byte, profile models.UserProfile) (string, error) {
	claims := jwt.MapClaims{
		"user_id": profile.UID,
		"email":   profile.Email,
		"role":    profile.Role,
		"name":    profile.DisplayName,
		"picture": profile.PhotoURL,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session JWT and extracts its claims.
func ParseToken(secret []byte, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}

	claims := Claims{}
	claims.UserID, _ = mapClaims["user_id"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	if claims.UserID == "" {
		return Claims{}, errors.New("token carries no user id")
	}
	return claims, nil
}
