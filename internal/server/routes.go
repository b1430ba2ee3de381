package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/applications"
	"cie-backend/internal/auth"
	"cie-backend/internal/feedback"
	"cie-backend/internal/internships"
	"cie-backend/internal/locations"
	"cie-backend/internal/projects"
	"cie-backend/internal/services/health"
	"cie-backend/internal/shared/metrics"
	"cie-backend/internal/shortlist"
	"cie-backend/internal/uploads"
	"cie-backend/internal/users"
)

// Handlers carries every route registrar the engine mounts.
type Handlers struct {
	Health       *health.Service
	Google       *auth.GoogleService
	Users        *users.Handler
	Internships  *internships.Handler
	Applications *applications.Handler
	Projects     *projects.Handler
	Feedback     *feedback.Handler
	Locations    *locations.Handler
	Uploads      *uploads.Handler
	Shortlist    *shortlist.Handler
}

func registerRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Health.Status())
	})
	api.GET("/metrics", metrics.Handler())

	if h.Google != nil {
		h.Google.RegisterRoutes(api)
	}
	h.Users.RegisterRoutes(api)
	h.Internships.RegisterRoutes(api)
	h.Applications.RegisterRoutes(api)
	h.Projects.RegisterRoutes(api)
	h.Feedback.RegisterRoutes(api)
	h.Locations.RegisterRoutes(api)
	h.Uploads.RegisterRoutes(api)
	h.Shortlist.RegisterRoutes(api)
}
