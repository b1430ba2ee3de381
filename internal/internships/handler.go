package internships

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/users"
)

// Handler wires HTTP handlers to the internships service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches internship routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/internships", h.list)
	rg.POST("/internships", h.create)
	rg.GET("/internships/:id", h.get)
	rg.GET("/internships/:id/description", h.description)
	rg.DELETE("/internships/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	title := c.PostForm("title")
	duration := c.PostForm("duration")
	facultyID := c.PostForm("faculty_id")
	skills := splitSkills(c.PostForm("skills"))

	startDate, err := parseDate(c.PostForm("start_date"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid start_date", nil)
		return
	}
	endDate, err := parseDate(c.PostForm("end_date"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid end_date", nil)
		return
	}

	var slots *int
	if raw := c.PostForm("slots"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid slots", nil)
			return
		}
		slots = &n
	}

	in := CreateInput{
		Title:     title,
		Duration:  duration,
		Skills:    skills,
		FacultyID: facultyID,
		Slots:     slots,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if file, err := c.FormFile("description"); err == nil {
		f, err := file.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not read description file", nil)
			return
		}
		defer f.Close()
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
			respond.Error(c, http.StatusBadRequest, "validation_error", "description must be a PDF", nil)
			return
		}
		in.Description = f
	}

	internship, err := h.Svc.Create(c.Request.Context(), actorID, in)
	if err != nil {
		h.respondError(c, err, "failed to create internship")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"internship": internship})
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to list internships")
		return
	}
	respond.OK(c, gin.H{"internships": list})
}

func (h *Handler) get(c *gin.Context) {
	internship, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch internship")
		return
	}
	respond.OK(c, gin.H{"internship": internship})
}

func (h *Handler) description(c *gin.Context) {
	rc, err := h.Svc.OpenDescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to fetch description")
		return
	}
	defer rc.Close()
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}

func (h *Handler) delete(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	leftover, err := h.Svc.Delete(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to delete internship")
		return
	}

	body := gin.H{"success": true}
	if leftover != "" {
		body["details"] = gin.H{"orphaned_object": leftover}
	}
	respond.OK(c, body)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Access denied - Admin only", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Internship not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
