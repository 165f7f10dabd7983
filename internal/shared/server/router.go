package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bridgette013/Truthseeker/internal/shared/config"
	"github.com/Bridgette013/Truthseeker/internal/shared/metrics"
	"github.com/Bridgette013/Truthseeker/internal/shared/server/middleware"
	"github.com/Bridgette013/Truthseeker/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the feature handlers the router mounts.
type RouterDeps struct {
	Config            config.Config
	AnalysisHandler   RouteRegistrar
	TranscriptHandler RouteRegistrar
	CaseHandler       RouteRegistrar
	JournalHandler    RouteRegistrar
	EvidenceHandler   RouteRegistrar
	UsageHandler      RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	for _, h := range []RouteRegistrar{
		deps.AnalysisHandler,
		deps.TranscriptHandler,
		deps.CaseHandler,
		deps.JournalHandler,
		deps.EvidenceHandler,
		deps.UsageHandler,
	} {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

// rateLimits throttles the model-backed routes harder than plain reads.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYSES": {Rate: 0.5, Burst: 3},
			"REPORTS":  {Rate: 0.2, Burst: 2},
			"DEFAULT":  {Rate: 5, Burst: 20},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			switch {
			case strings.HasPrefix(path, "/api/v1/analyses") && c.Request.Method == http.MethodPost:
				return "ANALYSES"
			case strings.HasPrefix(path, "/api/v1/reports"):
				return "REPORTS"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
