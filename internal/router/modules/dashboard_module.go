package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// DashboardModule wires the dashboard routes.
// Protected: GET /dashboard/stats, GET /dashboard/activity

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Users   repository.UserRepository
}

func NewDashboardModule(h *handlers.DashboardHandler, users repository.UserRepository) *DashboardModule {
	return &DashboardModule{Handler: h, Users: users}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/dashboard")
	g.Use(middleware.Auth(container.GetJWT(), m.Users))

	g.GET("/stats", m.Handler.Stats)
	g.GET("/activity", m.Handler.Activity)
}
