package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenAuth guards the admin API with a shared secret carried in the
// X-API-Key header. An empty configured token locks the API out entirely
// rather than leaving it open.
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			c.Abort()
			return
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(key), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
