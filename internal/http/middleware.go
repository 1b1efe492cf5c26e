package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"roomshare-go/internal/auth"
)

// AuthMiddleware validates the bearer token and stores the authenticated
// user id in the gin context.
func AuthMiddleware(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			code := "authorization_header_invalid"
			if errors.Is(err, auth.ErrMissingToken) {
				code = "authorization_header_missing"
			}
			c.AbortWithStatusJSON(401, gin.H{"error": code})
			return
		}

		claims, err := jwt.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid_token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// currentUserID reads the user id set by AuthMiddleware. Zero means the
// middleware did not run.
func currentUserID(c *gin.Context) uint {
	val, exists := c.Get("userID")
	if !exists {
		return 0
	}
	id, _ := val.(uint)
	return id
}
