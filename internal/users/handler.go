package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.GET("/users", h.listUsers)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}

	respond.OK(c, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)
	actor, err := h.Svc.GetByID(c.Request.Context(), actorID)
	if err != nil || actor.Role != RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - Admin only", nil)
		return
	}

	role := NormalizeRole(c.Query("role"))
	list, err := h.Svc.List(c.Request.Context(), role)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}

	respond.OK(c, gin.H{"users": list})
}
