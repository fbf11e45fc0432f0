package middleware

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/apperr"
	"inkwell/internal/session"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// LoadSession resolves the session cookie and, when it verifies, puts the
// user id in the context. It never rejects a request.
func LoadSession(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.Resolve(c.Request); ok {
			c.Set(UserIDKey, claims.UserID)
			c.Set(UserEmailKey, claims.Email)
		}
		c.Next()
	}
}

// AuthRequired rejects requests LoadSession found no session for.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			err := apperr.Unauthenticated("Not authenticated")
			c.AbortWithStatusJSON(err.Kind.Status(), gin.H{
				"error": gin.H{"code": err.Kind.String(), "message": err.Message},
			})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
