package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the acting user's numeric id on every authenticated call.
// The gateway in front of this service is trusted to have resolved the caller.
const UserIDHeader = "X-Sharer-User-Id"

// Required is a Gin middleware that extracts the acting user id from the
// X-Sharer-User-Id header and stores it in the request context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(UserIDHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + UserIDHeader + " header",
			})
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + UserIDHeader + " header",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
