package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/internal/interface/middleware"
	"github.com/nextstep/school-api/pkg/response"
	"github.com/nextstep/school-api/pkg/validation"
)

type UserHandler struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewUserHandler(repo repository.UserRepository, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Repo: repo, Logger: logger}
}

type updateProfileRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
}

// UpdateProfile PUT /api/v1/users/profile — partial update of the caller's
// own record.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if err := h.Repo.Update(c.Request.Context(), u); err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("profile update failed")
		response.Error(c, http.StatusInternalServerError, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "profile updated", nil)
}

// List GET /api/v1/users (admin only) with department filter and skip/limit
// pagination.
func (h *UserHandler) List(c *gin.Context) {
	department := c.Query("department")
	skip := intQuery(c, "skip", 0, 0, 1<<30)
	limit := intQuery(c, "limit", 50, 1, 100)

	users, err := h.Repo.List(c.Request.Context(), department, skip, limit)
	if err != nil {
		h.Logger.WithError(err).Error("user list failed")
		response.Error(c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	response.Success(c, http.StatusOK, userViews(users), "users", gin.H{"skip": skip, "limit": limit})
}

// Get GET /api/v1/users/:id (any authenticated user).
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	u, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("user fetch failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch user", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "user", nil)
}

// intQuery parses an integer query parameter, clamping to [min, max].
func intQuery(c *gin.Context, name string, def, min, max int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
