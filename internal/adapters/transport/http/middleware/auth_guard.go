package middleware

import (
	"net/http"

	"github.com/avelorn/auth-service/internal/app/auth/service"
	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key under which the guard stores the
// authenticated user.
const UserKey = "auth.user"

// RequireAccessToken authenticates the request from the access-token cookie.
// Missing, expired, or forged tokens all abort with the same 401.
func RequireAccessToken(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie("access_token")
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := svc.Validate(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
