package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the signed-in dashboard user. Token is forwarded upstream
// unchanged.
type Identity struct {
	UserID int
	Email  string
	Role   string
	Token  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Please login first.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			unauthorized(c, "Token is empty")
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				unauthorized(c, "Token expired")
			case errors.Is(err, ErrInvalidTokenType):
				unauthorized(c, "Access token required")
			default:
				unauthorized(c, "Invalid or malformed token")
			}
			return
		}

		c.Set(identityKey, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			Token:  tokenString,
		})

		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
