package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/internships"
	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/users"
)

// Handler wires HTTP handlers to the applications service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.apply)
	rg.GET("/applications", h.list)
	rg.POST("/applications/:id/status", h.setStatus)
}

type applyRequest struct {
	InternshipID string `json:"internship_id" binding:"required"`
	ResumeKey    string `json:"resume_key"`
}

func (h *Handler) apply(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body applyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "internship_id is required", nil)
		return
	}

	app, err := h.Svc.Apply(c.Request.Context(), actorID, body.InternshipID, body.ResumeKey)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			respond.Error(c, http.StatusBadRequest, "duplicate_application", "Already applied to this internship", nil)
			return
		}
		if errors.Is(err, internships.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Internship not found", nil)
			return
		}
		h.respondError(c, err, "failed to submit application")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"application": app})
}

func (h *Handler) list(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	if internshipID := c.Query("internshipId"); internshipID != "" {
		list, err := h.Svc.ListForInternship(c.Request.Context(), actorID, internshipID)
		if err != nil {
			h.respondError(c, err, "failed to list applications")
			return
		}
		respond.OK(c, gin.H{"applications": list})
		return
	}

	studentID := c.Query("studentId")
	if studentID == "" {
		studentID = actorID
	}
	list, err := h.Svc.ListForStudent(c.Request.Context(), actorID, studentID)
	if err != nil {
		h.respondError(c, err, "failed to list applications")
		return
	}
	respond.OK(c, gin.H{"applications": list})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) setStatus(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	app, err := h.Svc.SetStatus(c.Request.Context(), actorID, c.Param("id"), body.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "status must be ACCEPTED or REJECTED", nil)
			return
		}
		h.respondError(c, err, "failed to update application status")
		return
	}
	respond.OK(c, gin.H{"application": app})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Application not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
