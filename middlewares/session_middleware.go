package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-ID"

// SessionMiddleware pins every request to an explicit chat session id.
// Clients that don't send one get a fresh uuid back in the response
// header and should echo it on subsequent requests.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(sessionHeader)
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Set("sessionID", sid)
		c.Header(sessionHeader, sid)
		c.Next()
	}
}
