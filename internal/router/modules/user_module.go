package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// UserModule wires the user directory routes.
// Protected: PUT /users/profile, GET /users/:id
// Admin: GET /users

type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.Use(middleware.Auth(container.GetJWT(), m.Users))

	g.PUT("/profile", m.Handler.UpdateProfile)
	g.GET("/:id", m.Handler.Get)
	g.GET("", middleware.RequireAdmin(), m.Handler.List)
}
