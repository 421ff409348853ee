package auth

import "github.com/gin-gonic/gin"

const userIDKey = "userID"

// SetUserID stores the caller's id in the gin context.
func SetUserID(c *gin.Context, id int64) {
	c.Set(userIDKey, id)
}

// GetUserID returns the caller's ID or 0 when RequireUserID did not run.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
