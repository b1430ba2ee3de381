package locations

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/users"
)

// Handler wires HTTP handlers to the locations service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches location routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations", h.list)
	rg.POST("/locations", h.create)
	rg.DELETE("/locations/:id", h.delete)
	rg.POST("/locations/:id/bookings", h.book)
	rg.GET("/locations/:id/bookings", h.bookings)
}

type createLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
}

func (h *Handler) create(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body createLocationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	l, err := h.Svc.Create(c.Request.Context(), actorID, body.Name, body.Building, body.Capacity)
	if err != nil {
		h.respondError(c, err, "failed to create location")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"location": l})
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to list locations")
		return
	}
	respond.OK(c, gin.H{"locations": list})
}

func (h *Handler) delete(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete location")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

type bookRequest struct {
	Purpose  string `json:"purpose"`
	StartsAt string `json:"starts_at" binding:"required"`
	EndsAt   string `json:"ends_at" binding:"required"`
}

func (h *Handler) book(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	var body bookRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "starts_at and ends_at are required", nil)
		return
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid starts_at", nil)
		return
	}
	endsAt, err := time.Parse(time.RFC3339, body.EndsAt)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid ends_at", nil)
		return
	}

	b, err := h.Svc.Book(c.Request.Context(), actorID, c.Param("id"), body.Purpose, startsAt, endsAt)
	if err != nil {
		if errors.Is(err, ErrOverlap) {
			respond.Error(c, http.StatusConflict, "booking_conflict", "Location is already booked for that time", nil)
			return
		}
		h.respondError(c, err, "failed to book location")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) bookings(c *gin.Context) {
	list, err := h.Svc.Bookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to list bookings")
		return
	}
	respond.OK(c, gin.H{"bookings": list})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - Admin only", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Location not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
