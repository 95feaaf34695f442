package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// NotificationModule wires the notification routes.
// Protected: GET /notifications, GET /notifications/unread-count,
// PATCH /notifications/:id/read, PATCH /notifications/read-all
// Admin: POST /notifications/send, POST /notifications/broadcast

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Users   repository.UserRepository
}

func NewNotificationModule(h *handlers.NotificationHandler, users repository.UserRepository) *NotificationModule {
	return &NotificationModule{Handler: h, Users: users}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	g.Use(middleware.Auth(container.GetJWT(), m.Users))

	g.GET("", m.Handler.List)
	g.GET("/unread-count", m.Handler.UnreadCount)
	g.PATCH("/:id/read", m.Handler.MarkRead)
	g.PATCH("/read-all", m.Handler.MarkAllRead)

	admin := g.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/send", m.Handler.Send)
	admin.POST("/broadcast", m.Handler.Broadcast)
}
