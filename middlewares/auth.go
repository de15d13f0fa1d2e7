package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"storefront/configs"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(c *gin.Context) (userID uint, role string, ok bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return 0, "", false
	}
	tokenStr := strings.TrimPrefix(h, "Bearer ")

	cfg := configs.LoadConfig()
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, cok := token.Claims.(jwt.MapClaims)
	if !cok {
		return 0, "", false
	}

	if v, vok := claims["role"].(string); vok {
		role = v
	}
	switch v := claims["userId"].(type) {
	case float64:
		userID = uint(v)
	case int:
		userID = uint(v)
	case int64:
		userID = uint(v)
	case uint:
		userID = v
	}
	return userID, role, userID != 0
}

// AuthMiddleware validates the token and (if given) enforces a role.
func AuthMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := parseToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("role", role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// OptionalAuth attaches the user identity when a valid token is present but
// never rejects: the storefront works for guests on the session key alone.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, role, ok := parseToken(c); ok {
			c.Set("userId", userID)
			c.Set("role", role)
		}
		c.Next()
	}
}
