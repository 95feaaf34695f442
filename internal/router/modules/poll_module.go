package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// PollModule wires the poll routes.
// Protected: GET /polls, GET /polls/:id, POST /polls/:id/vote
// Admin: POST /polls, PATCH /polls/:id/close

type PollModule struct {
	Handler *handlers.PollHandler
	Users   repository.UserRepository
}

func NewPollModule(h *handlers.PollHandler, users repository.UserRepository) *PollModule {
	return &PollModule{Handler: h, Users: users}
}

func (m *PollModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/polls")
	g.Use(middleware.Auth(container.GetJWT(), m.Users))

	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)
	g.POST("/:id/vote", m.Handler.Vote)

	admin := g.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("", m.Handler.Create)
	admin.PATCH("/:id/close", m.Handler.Close)
}
