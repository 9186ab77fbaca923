// Package auth validates the user identifiers issued by the identity
// provider. Sign-in itself happens at the provider.
package auth

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

const maxClerkIDLen = 128

var clerkIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidClerkID reports whether id looks like an identity provider user id.
func ValidClerkID(id string) bool {
	return id != "" && len(id) <= maxClerkIDLen && clerkIDPattern.MatchString(id)
}

// RequireClerkID rejects requests whose path parameter param is not a valid
// user id.
func RequireClerkID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(param)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Clerk ID is required"})
			return
		}
		if !ValidClerkID(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid Clerk ID"})
			return
		}
		c.Next()
	}
}
