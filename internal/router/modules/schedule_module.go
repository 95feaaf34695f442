package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// ScheduleModule wires the schedule routes.
// Protected: GET /schedules, GET /schedules/:id
// Admin: POST /schedules, PUT /schedules/:id, DELETE /schedules/:id

type ScheduleModule struct {
	Handler *handlers.ScheduleHandler
	Users   repository.UserRepository
}

func NewScheduleModule(h *handlers.ScheduleHandler, users repository.UserRepository) *ScheduleModule {
	return &ScheduleModule{Handler: h, Users: users}
}

func (m *ScheduleModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/schedules")
	g.Use(middleware.Auth(container.GetJWT(), m.Users))

	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)

	admin := g.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("", m.Handler.Create)
	admin.PUT("/:id", m.Handler.Update)
	admin.DELETE("/:id", m.Handler.Delete)
}
