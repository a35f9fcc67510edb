package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextUserIDKey    = "userID"    // authenticated user id (string)
	ContextSessionKey   = "session"   // *auth.Session when authenticated by cookie
	ContextRequestIDKey = "requestID" // per-request uuid
)

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userIDInterface, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	userID, ok := userIDInterface.(string)
	if !ok || userID == "" {
		return "", errors.New("user ID in context is not a string")
	}
	return userID, nil
}

// GetRequestID returns the request id set by the request id middleware, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}
