package handlers

import (
	"errors"
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

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

type sendNotificationRequest struct {
	UserID  int64  `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"omitempty,notiftype"`
}

type broadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"omitempty,notiftype"`
}

// List GET /api/v1/notifications?unread_only=&skip=&limit= — the caller's
// own notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	unreadOnly := c.Query("unread_only") == "true"
	skip := intQuery(c, "skip", 0, 0, 1<<30)
	limit := intQuery(c, "limit", 50, 1, 100)

	ns, err := h.Svc.ListForUser(c.Request.Context(), u.ID, unreadOnly, skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("notification list failed")
		response.Error(c, http.StatusInternalServerError, "failed to list notifications", nil)
		return
	}
	views := make([]NotificationView, 0, len(ns))
	for _, n := range ns {
		views = append(views, notificationView(n))
	}
	response.Success(c, http.StatusOK, views, "notifications", gin.H{"skip": skip, "limit": limit})
}

// UnreadCount GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	n, err := h.Svc.UnreadCount(c.Request.Context(), u.ID)
	if err != nil {
		h.Logger.WithError(err).Error("unread count failed")
		response.Error(c, http.StatusInternalServerError, "failed to count notifications", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n}, "unread count", nil)
}

// MarkRead PATCH /api/v1/notifications/:id/read — scoped to the caller's own
// notifications.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid notification id", nil)
		return
	}
	u, _ := middleware.CurrentUser(c)
	if err := h.Svc.MarkRead(c.Request.Context(), id, u.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "notification not found", nil)
			return
		}
		h.Logger.WithError(err).Error("mark read failed")
		response.Error(c, http.StatusInternalServerError, "failed to update notification", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "notification marked read", nil)
}

// MarkAllRead PATCH /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	if err := h.Svc.MarkAllRead(c.Request.Context(), u.ID); err != nil {
		h.Logger.WithError(err).Error("mark all read failed")
		response.Error(c, http.StatusInternalServerError, "failed to update notifications", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "all notifications marked read", nil)
}

// Send POST /api/v1/notifications/send (admin only)
func (h *NotificationHandler) Send(c *gin.Context) {
	var req sendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	}
	if n.Type == "" {
		n.Type = "info"
	}
	if err := h.Svc.Send(c.Request.Context(), n); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "target user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("notification send failed")
		response.Error(c, http.StatusInternalServerError, "failed to send notification", nil)
		return
	}
	response.Success(c, http.StatusCreated, notificationView(n), "notification sent", nil)
}

// Broadcast POST /api/v1/notifications/broadcast (admin only)
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	notifType := req.Type
	if notifType == "" {
		notifType = "info"
	}
	n, err := h.Svc.Broadcast(c.Request.Context(), req.Title, req.Message, notifType)
	if err != nil {
		h.Logger.WithError(err).Error("broadcast failed")
		response.Error(c, http.StatusInternalServerError, "failed to broadcast", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"recipients": n}, "broadcast sent", nil)
}
