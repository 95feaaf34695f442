package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/container"
	"github.com/nextstep/school-api/internal/domain/repository"
	handlers "github.com/nextstep/school-api/internal/interface/http"
	"github.com/nextstep/school-api/internal/interface/middleware"
)

// DocumentModule wires the document routes.
// Protected: GET /documents, GET /documents/search, GET /documents/:id,
// POST /documents, POST /documents/upload
// Admin: DELETE /documents/:id

type DocumentModule struct {
	Handler *handlers.DocumentHandler
	Users   repository.UserRepository
}

func NewDocumentModule(h *handlers.DocumentHandler, users repository.UserRepository) *DocumentModule {
	return &DocumentModule{Handler: h, Users: users}
}

func (m *DocumentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/documents")
	g.Use(middleware.Auth(container.GetJWT(), m.Users))

	g.GET("", m.Handler.List)
	g.GET("/search", m.Handler.Search)
	g.GET("/:id", m.Handler.Get)
	g.POST("", m.Handler.Create)
	g.POST("/upload", m.Handler.Upload)

	g.DELETE("/:id", middleware.RequireAdmin(), m.Handler.Delete)
}
