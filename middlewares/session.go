package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "sf_session"

// SessionMiddleware guarantees every storefront request carries a session
// key, so guests can build a cart before (or without) logging in. The cart
// survives navigation across checkout steps on this key.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(sessionCookie)
		if err != nil || key == "" {
			key = uuid.NewString()
			// 30 days, lax, http-only
			c.SetCookie(sessionCookie, key, 30*24*3600, "/", "", false, true)
		}
		c.Set("sessionKey", key)
		c.Next()
	}
}
