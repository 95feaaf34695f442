package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/application"
	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/interface/middleware"
	"github.com/nextstep/school-api/pkg/response"
	"github.com/nextstep/school-api/pkg/validation"
)

// AuthHandler exposes registration, both login paths, and the current-user
// probe. Every authentication failure, whatever its internal cause, maps to
// the same generic message.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,pwd"`
	Department string `json:"department"`
	Role       string `json:"role" binding:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Role:       entity.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusConflict, "email already registered", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "invalid role", nil)
		default:
			h.Logger.WithError(err).Error("registration failed")
			response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, userView(u), "account created", nil)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.LoginLocal(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	response.Success(c, http.StatusOK, loginResponse{Token: token, User: userView(u)}, "login successful", nil)
}

// Google POST /api/v1/auth/google
func (h *AuthHandler) Google(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.LoginGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "google sign-in failed", nil)
			return
		}
		h.Logger.WithError(err).Error("google login failed")
		response.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	response.Success(c, http.StatusOK, loginResponse{Token: token, User: userView(u)}, "login successful", nil)
}

// Me GET /api/v1/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "current user", nil)
}
