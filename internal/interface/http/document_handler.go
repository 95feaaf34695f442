package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/application"
	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/internal/interface/middleware"
	"github.com/nextstep/school-api/pkg/response"
	"github.com/nextstep/school-api/pkg/validation"
)

// maxUploadBytes caps multipart uploads at 25 MiB.
const maxUploadBytes = 25 << 20

type DocumentHandler struct {
	Svc      *application.DocumentService
	Activity *application.ActivityLogger
	Logger   *logrus.Logger
}

func NewDocumentHandler(svc *application.DocumentService, activity *application.ActivityLogger, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{Svc: svc, Activity: activity, Logger: logger}
}

type documentRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl" binding:"required,url"`
	FileSize    int64  `json:"fileSize" binding:"gte=0"`
}

// List GET /api/v1/documents with category/search filters and skip/limit
// pagination.
func (h *DocumentHandler) List(c *gin.Context) {
	skip := intQuery(c, "skip", 0, 0, 1<<30)
	limit := intQuery(c, "limit", 50, 1, 100)
	docs, err := h.Svc.Repo.List(c.Request.Context(), c.Query("category"), c.Query("search"), skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("document list failed")
		response.Error(c, http.StatusInternalServerError, "failed to list documents", nil)
		return
	}
	views := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, documentView(d))
	}
	response.Success(c, http.StatusOK, views, "documents", gin.H{"skip": skip, "limit": limit})
}

// Get GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid document id", nil)
		return
	}
	d, err := h.Svc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "document not found", nil)
			return
		}
		h.Logger.WithError(err).Error("document fetch failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch document", nil)
		return
	}
	response.Success(c, http.StatusOK, documentView(d), "document", nil)
}

// Create POST /api/v1/documents — registers metadata for a file
// that already has a URL.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, _ := middleware.CurrentUser(c)
	d := &entity.Document{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		FileURL:     req.FileURL,
		FileSize:    req.FileSize,
		UploadedBy:  u.ID,
	}
	if err := h.Svc.Create(c.Request.Context(), d); err != nil {
		h.Logger.WithError(err).Error("document create failed")
		response.Error(c, http.StatusInternalServerError, "failed to create document", nil)
		return
	}
	h.logActivity(c, fmt.Sprintf("Document uploaded: %s", d.Title), "create", d.ID)
	response.Success(c, http.StatusCreated, documentView(d), "document created", nil)
}

// Upload POST /api/v1/documents/upload — multipart upload into
// object storage. Fields: file (required), title, category, description.
func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	title := c.PostForm("title")
	if title == "" {
		title = file.Filename
	}
	category := c.PostForm("category")
	if category == "" {
		category = "General"
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	u, _ := middleware.CurrentUser(c)
	d := &entity.Document{
		Title:       title,
		Category:    category,
		Description: c.PostForm("description"),
		FileSize:    file.Size,
		UploadedBy:  u.ID,
	}
	contentType := file.Header.Get("Content-Type")
	if err := h.Svc.Upload(c.Request.Context(), d, src, file.Filename, contentType); err != nil {
		h.Logger.WithError(err).Error("document upload failed")
		response.Error(c, http.StatusInternalServerError, "failed to upload document", nil)
		return
	}
	h.logActivity(c, fmt.Sprintf("Document uploaded: %s", d.Title), "create", d.ID)
	response.Success(c, http.StatusCreated, documentView(d), "document uploaded", nil)
}

// Delete DELETE /api/v1/documents/:id (admin only)
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid document id", nil)
		return
	}
	d, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "document not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("document_id", id).Error("document delete failed")
		response.Error(c, http.StatusInternalServerError, "failed to delete document", nil)
		return
	}
	h.logActivity(c, fmt.Sprintf("Document deleted: %s", d.Title), "delete", id)
	response.Success[any](c, http.StatusOK, nil, "document deleted", nil)
}

// Search GET /api/v1/documents/search?q=...&size=... — full-text search over
// the document index.
func (h *DocumentHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size := intQuery(c, "size", 10, 1, 50)
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("document search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *DocumentHandler) logActivity(c *gin.Context, title, action string, id int64) {
	h.Activity.Log(c.Request.Context(), title, actorName(c), action, "document", id)
}
