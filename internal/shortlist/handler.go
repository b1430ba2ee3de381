package shortlist

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/projects"
	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/users"
)

// Handler wires the shortlist endpoint to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the shortlist route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/shortlist", h.shortlist)
}

type shortlistRequest struct {
	ProjectID    string `json:"project_id"`
	TopK         int    `json:"top_k"`
	CustomPrompt string `json:"custom_prompt"`
	ExportFormat string `json:"export_format"`
}

func (h *Handler) shortlist(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body shortlistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("projectId", body.ProjectID)

	result, err := h.Svc.Run(c.Request.Context(), actorID, Input{
		ProjectID:    body.ProjectID,
		TopK:         body.TopK,
		CustomPrompt: body.CustomPrompt,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if strings.EqualFold(body.ExportFormat, "csv") {
		doc, err := RenderCSV(result)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render CSV", nil)
			return
		}
		fileName := CSVFileName(result.Project.Name, time.Now())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		c.Data(http.StatusOK, "text/csv", doc)
		return
	}

	respond.OK(c, gin.H{
		"success":                true,
		"project":                result.Project,
		"total_applications":     result.TotalApplications,
		"shortlisted_candidates": result.ShortlistedCandidates,
		"prompt_used":            result.PromptUsed,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - Faculty only", nil)
	case errors.Is(err, ErrNotOwner):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - You can only shortlist for your own projects", nil)
	case errors.Is(err, ErrMissingProjectID):
		respond.Error(c, http.StatusBadRequest, "validation_error", "project_id is required", nil)
	case errors.Is(err, projects.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Project not found", nil)
	case errors.Is(err, ErrNoPendingReqs):
		respond.Error(c, http.StatusBadRequest, "precondition_failed", "No pending requests found for this project", nil)
	case errors.Is(err, ErrNoResumeDir):
		respond.Error(c, http.StatusBadRequest, "precondition_failed", "No resume folder found for this project", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, "configuration_error", "Ranking service is not configured", nil)
	case errors.Is(err, ErrInProgress):
		respond.Error(c, http.StatusConflict, "shortlist_in_progress", "A shortlist run is already in progress for this project", nil)
	case errors.Is(err, ErrRunFailed):
		respond.Error(c, http.StatusInternalServerError, "orchestration_failure", "Failed to shortlist candidates", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to shortlist candidates", nil)
	}
}
