package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/users"
)

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.submit)
	rg.GET("/feedback", h.list)
	rg.POST("/feedback/:id/resolve", h.resolve)
}

type submitRequest struct {
	Category string `json:"category"`
	Message  string `json:"message" binding:"required"`
}

func (h *Handler) submit(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body submitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	t, err := h.Svc.Submit(c.Request.Context(), actorID, body.Category, body.Message)
	if err != nil {
		h.respondError(c, err, "failed to submit feedback")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"feedback": t})
}

func (h *Handler) list(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	list, err := h.Svc.List(c.Request.Context(), actorID, c.Query("status"))
	if err != nil {
		h.respondError(c, err, "failed to list feedback")
		return
	}
	respond.OK(c, gin.H{"feedback": list})
}

func (h *Handler) resolve(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	t, err := h.Svc.Resolve(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to resolve feedback")
		return
	}
	respond.OK(c, gin.H{"feedback": t})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Feedback ticket not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
