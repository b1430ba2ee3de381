package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/shared/config"
	"cie-backend/internal/shared/server/middleware"
)

// NewEngine builds the gin engine with the full middleware stack and all
// routes registered.
func NewEngine(cfg config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(rateLimitConfig()),
	)

	registerRoutes(engine, h)
	return engine
}

// rateLimitConfig throttles shortlist runs harder than plain CRUD since each
// run spawns a long-lived subprocess.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":   {Rate: 20, Burst: 40},
			"SHORTLIST": {Rate: 0.2, Burst: 2},
		},
		GroupFor: func(c *gin.Context) string {
			if c.FullPath() == "/api/v1/projects/shortlist" {
				return "SHORTLIST"
			}
			return "DEFAULT"
		},
	}
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
