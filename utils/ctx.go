package utils

import "github.com/gin-gonic/gin"

func CurrentSessionKey(c *gin.Context) string {
	if v, ok := c.Get("sessionKey"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CurrentUserID returns nil for guests.
func CurrentUserID(c *gin.Context) *uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		if id != 0 {
			return &id
		}
	case float64:
		u := uint(id)
		if u != 0 {
			return &u
		}
	}
	return nil
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
