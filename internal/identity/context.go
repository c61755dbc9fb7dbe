package identity

import "github.com/gin-gonic/gin"

const userIDKey = "actingUserID"

// GetUserID returns the acting user's id or 0 when the identity middleware did not run.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
