package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientID identifies the calling browser session. Clients send a stable
// X-Client-Id header; requests without one fall back to the peer IP.
func ClientID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-Client-Id")); id != "" {
		return id
	}
	return strings.TrimSpace(c.ClientIP())
}
