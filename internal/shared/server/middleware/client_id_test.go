package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestClientIDPrefersHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Client-Id", "  client-a  ")

	if got := ClientID(c); got != "client-a" {
		t.Fatalf("ClientID = %q, want client-a", got)
	}
}

func TestClientIDFallsBackToPeerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.9:4242"

	if got := ClientID(c); got != "203.0.113.9" {
		t.Fatalf("ClientID = %q, want peer ip", got)
	}
}
