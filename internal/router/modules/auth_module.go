package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// AuthModule wires the authentication routes.
// Public: POST /auth/register, POST /auth/login, POST /auth/google
// Protected: GET /auth/me

type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/google", m.Handler.Google)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(container.GetJWT(), m.Users))
	auth.GET("/me", m.Handler.Me)
}
