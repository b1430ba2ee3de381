package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cie-backend/internal/extract"
	"cie-backend/internal/shared/server/middleware"
	"cie-backend/internal/shared/server/respond"
	"cie-backend/internal/shared/storage/object"
	"cie-backend/internal/shared/telemetry"
	"cie-backend/internal/shared/util"
	"cie-backend/internal/users"
)

const maxUploadBytes = 10 << 20

// Handler serves binary upload endpoints backed by the object store.
type Handler struct {
	Store object.ObjectStore
	Users *users.Service
}

func NewHandler(store object.ObjectStore, usersSvc *users.Service) *Handler {
	return &Handler{Store: store, Users: usersSvc}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/resume", h.resume)
	rg.POST("/uploads/description", h.description)
	rg.POST("/uploads/profile-photo", h.profilePhoto)
}

// resume accepts a student's resume PDF. With a project_id form field the
// file lands in that project's application folder, which is where the
// shortlist run later looks for resumes.
func (h *Handler) resume(c *gin.Context) {
	actor, ok := h.requireRole(c, users.RoleStudent)
	if !ok {
		return
	}

	data, fileName, ok := h.readFile(c, "file")
	if !ok {
		return
	}
	text, err := extract.ExtractTextFromBytes(c.Request.Context(), data, "application/pdf", fileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is not a readable PDF", nil)
		return
	}

	var key string
	if projectID := strings.TrimSpace(c.PostForm("project_id")); projectID != "" {
		key = path.Join("project-applications", projectID, fileName)
	} else {
		key = path.Join("resumes", actor.ID, fileName)
	}

	size, err := h.Store.SaveWithKey(c.Request.Context(), key, "application/pdf", bytes.NewReader(data))
	if err != nil {
		telemetry.Error("uploads.resume_failed", map[string]any{"key": key, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		return
	}
	saveExtractedCopy(c.Request.Context(), h.Store, key, text)

	respond.JSON(c, http.StatusCreated, gin.H{
		"storage_key": key,
		"file_name":   fileName,
		"size_bytes":  size,
	})
}

// description accepts an internship or project description PDF from staff.
func (h *Handler) description(c *gin.Context) {
	_, ok := h.requireRole(c, users.RoleAdmin, users.RoleFaculty)
	if !ok {
		return
	}

	data, fileName, ok := h.readFile(c, "file")
	if !ok {
		return
	}
	if _, err := extract.ExtractTextFromBytes(c.Request.Context(), data, "application/pdf", fileName); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is not a readable PDF", nil)
		return
	}

	key := path.Join("descriptions", uuid.NewString()+"-"+fileName)
	size, err := h.Store.SaveWithKey(c.Request.Context(), key, "application/pdf", bytes.NewReader(data))
	if err != nil {
		telemetry.Error("uploads.description_failed", map[string]any{"key": key, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store description", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"storage_key": key,
		"file_name":   fileName,
		"size_bytes":  size,
	})
}

// profilePhoto accepts a PNG or JPEG avatar for the acting user.
func (h *Handler) profilePhoto(c *gin.Context) {
	actor, ok := h.requireRole(c)
	if !ok {
		return
	}

	data, fileName, ok := h.readFile(c, "file")
	if !ok {
		return
	}
	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "photo must be PNG or JPEG", nil)
		return
	}

	key := path.Join("profile-photos", util.HashUserKey(actor.ID), fileName)
	size, err := h.Store.SaveWithKey(c.Request.Context(), key, contentType, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("uploads.photo_failed", map[string]any{"key": key, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store photo", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"storage_key": key,
		"size_bytes":  size,
	})
}

// saveExtractedCopy persists the text pulled out of a resume next to the
// original as <key>.extracted.txt. Best-effort: a failure is logged, the
// upload already succeeded.
func saveExtractedCopy(ctx context.Context, store object.ObjectStore, key, text string) {
	if _, err := store.SaveWithKey(ctx, key+".extracted.txt", "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Warn("uploads.extracted_copy_failed", map[string]any{"key": key, "error": err.Error()})
	}
}

// requireRole resolves the acting user and, when roles are given, enforces
// membership. Replies on failure and reports ok=false.
func (h *Handler) requireRole(c *gin.Context, roles ...string) (users.User, bool) {
	actorID := middleware.UserIDFromContext(c)
	actor, err := h.Users.GetByID(c.Request.Context(), actorID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "User not authenticated", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve user", nil)
		}
		return users.User{}, false
	}
	if len(roles) == 0 {
		return actor, true
	}
	for _, r := range roles {
		if actor.Role == r {
			return actor, true
		}
	}
	respond.Error(c, http.StatusForbidden, "forbidden", "Access denied", nil)
	return users.User{}, false
}

// readFile loads the multipart file into memory, enforcing the size cap and
// sanitizing the client-supplied name. Replies on failure and reports ok=false.
func (h *Handler) readFile(c *gin.Context, field string) ([]byte, string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return nil, "", false
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return nil, "", false
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return nil, "", false
	}

	data, err := readAll(fileHeader)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read file", nil)
		return nil, "", false
	}
	return data, fileName, true
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
}
