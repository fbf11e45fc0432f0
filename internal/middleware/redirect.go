package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/login"

// LoginRedirect sends browser navigations without a session to the login
// page. API calls, non-GET requests and the allow-listed paths pass
// through. It expects LoadSession to have run.
func LoginRedirect(allow ...string) gin.HandlerFunc {
	allowed := map[string]bool{LoginPath: true}
	for _, p := range allow {
		allowed[p] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") || allowed[path] {
			c.Next()
			return
		}
		if _, ok := CurrentUserID(c); ok {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}
