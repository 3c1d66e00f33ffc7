package handler

import (
	"github.com/gin-gonic/gin"
)

// CallerHeader names the request header carrying the caller's username.
// There is no cryptographic authentication; the header value is trusted
// as-is and resolved against the users collection in the service layer.
const CallerHeader = "X-Admin"

const callerContextKey = "caller_username"

// CallerIdentity extracts the caller's username from the request header
// and stores it in the Gin context. Handlers read the identity from the
// context and never touch the transport detail themselves.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username := c.GetHeader(CallerHeader); username != "" {
			c.Set(callerContextKey, username)
		}
		c.Next()
	}
}

// callerFromContext returns the caller username placed by CallerIdentity.
func callerFromContext(c *gin.Context) (string, bool) {
	caller, exists := c.Get(callerContextKey)
	if !exists {
		return "", false
	}
	username, ok := caller.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
