// README: Bearer-token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kabu/internal/auth"
	"kabu/internal/types"
)

const userIDKey = "auth_user_id"

// Auth rejects requests without a valid bearer token and stores the caller's
// user id on the request context.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		userID, err := svc.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CallerID returns the authenticated user's id, or 0 when the request did
// not pass through Auth.
func CallerID(c *gin.Context) types.ID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(types.ID); ok {
			return id
		}
	}
	return 0
}
