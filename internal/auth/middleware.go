package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects requests without a valid bearer token and stores the
// token's Identity on the gin context for downstream handlers.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	const prefix = "bearer "

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
			})
			return
		}

		id, err := jwtManager.ParseAndValidate(strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}
