package projects

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/users"
)

// Handler wires HTTP handlers to the projects service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches project routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.listProjects)
	rg.POST("/projects", h.createProject)
	rg.GET("/projects/:id/ai-prompt", h.getPrompt)
	rg.PUT("/projects/:id/ai-prompt", h.updatePrompt)
	rg.POST("/projects/:id/requests", h.createRequest)
	rg.GET("/projects/:id/requests", h.listRequests)
}

type createProjectRequest struct {
	Name                   string `json:"name" binding:"required"`
	Description            string `json:"description" binding:"required"`
	ExpectedCompletionDate string `json:"expected_completion_date" binding:"required"`
}

func (h *Handler) createProject(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body createProjectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name, description and expected_completion_date are required", nil)
		return
	}
	completion, err := time.Parse(time.RFC3339, body.ExpectedCompletionDate)
	if err != nil {
		// Accept bare dates too.
		completion, err = time.Parse("2006-01-02", body.ExpectedCompletionDate)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid expected_completion_date", nil)
			return
		}
	}

	project, err := h.Svc.Create(c.Request.Context(), actorID, CreateInput{
		Name:                   body.Name,
		Description:            body.Description,
		ExpectedCompletionDate: completion.UTC(),
	})
	if err != nil {
		h.respondError(c, err, "failed to create project")
		return
	}
	c.Set("projectId", project.ID)

	respond.JSON(c, http.StatusCreated, gin.H{"project": project})
}

func (h *Handler) listProjects(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)
	list, err := h.Svc.List(c.Request.Context(), actorID)
	if err != nil {
		h.respondError(c, err, "failed to list projects")
		return
	}
	respond.OK(c, gin.H{"projects": list})
}

func (h *Handler) getPrompt(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)
	projectID := c.Param("id")

	project, err := h.Svc.GetOwned(c.Request.Context(), actorID, projectID)
	if err != nil {
		h.respondError(c, err, "failed to fetch AI prompt")
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"project": gin.H{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
		},
		"ai_prompt_custom": project.AIPromptCustom,
		"default_prompt":   DefaultPrompt(project),
	})
}

type updatePromptRequest struct {
	AIPromptCustom string `json:"ai_prompt_custom"`
}

func (h *Handler) updatePrompt(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)
	projectID := c.Param("id")

	var body updatePromptRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	project, err := h.Svc.UpdatePrompt(c.Request.Context(), actorID, projectID, body.AIPromptCustom)
	if err != nil {
		h.respondError(c, err, "failed to update AI prompt")
		return
	}

	respond.OK(c, gin.H{
		"success":          true,
		"message":          "AI prompt updated successfully",
		"ai_prompt_custom": project.AIPromptCustom,
	})
}

type createRequestBody struct {
	ResumePath string `json:"resume_path" binding:"required"`
}

func (h *Handler) createRequest(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)
	projectID := c.Param("id")

	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_path is required", nil)
		return
	}

	req, err := h.Svc.Apply(c.Request.Context(), actorID, projectID, body.ResumePath)
	if err != nil {
		if errors.Is(err, ErrDuplicateRequest) {
			respond.Error(c, http.StatusBadRequest, "duplicate_request", "Already applied to this project", nil)
			return
		}
		h.respondError(c, err, "failed to submit request")
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"request": req})
}

func (h *Handler) listRequests(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)
	projectID := c.Param("id")

	list, err := h.Svc.PendingRequests(c.Request.Context(), actorID, projectID)
	if err != nil {
		h.respondError(c, err, "failed to list requests")
		return
	}
	respond.OK(c, gin.H{"requests": list})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - Faculty only", nil)
	case errors.Is(err, ErrNotOwner):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - You can only manage your own projects", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Project not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
