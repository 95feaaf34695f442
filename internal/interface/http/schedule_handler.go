package handlers

import (
	"errors"
	"fmt"
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

type ScheduleHandler struct {
	Repo     repository.ScheduleRepository
	Activity *application.ActivityLogger
	Logger   *logrus.Logger
}

func NewScheduleHandler(repo repository.ScheduleRepository, activity *application.ActivityLogger, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{Repo: repo, Activity: activity, Logger: logger}
}

type scheduleRequest struct {
	Department string `json:"department" binding:"required"`
	ClassCount int    `json:"classCount" binding:"gte=0"`
	StaffCount int    `json:"staffCount" binding:"gte=0"`
	Status     string `json:"status" binding:"omitempty,oneof=Active Draft Archived"`
}

// List GET /api/v1/schedules with optional search (partial department match)
// and status filters.
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.Repo.List(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		h.Logger.WithError(err).Error("schedule list failed")
		response.Error(c, http.StatusInternalServerError, "failed to list schedules", nil)
		return
	}
	views := make([]ScheduleView, 0, len(schedules))
	for _, s := range schedules {
		views = append(views, scheduleView(s))
	}
	response.Success(c, http.StatusOK, views, "schedules", nil)
}

// Get GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	s, ok := h.fetch(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, scheduleView(s), "schedule", nil)
}

// Create POST /api/v1/schedules (admin only)
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s := &entity.Schedule{
		Department: req.Department,
		ClassCount: req.ClassCount,
		StaffCount: req.StaffCount,
		Status:     req.Status,
	}
	if s.Status == "" {
		s.Status = "Draft"
	}
	if err := h.Repo.Create(c.Request.Context(), s); err != nil {
		h.Logger.WithError(err).Error("schedule create failed")
		response.Error(c, http.StatusInternalServerError, "failed to create schedule", nil)
		return
	}
	h.logActivity(c, fmt.Sprintf("Schedule created for %s", s.Department), "create", s.ID)
	response.Success(c, http.StatusCreated, scheduleView(s), "schedule created", nil)
}

// Update PUT /api/v1/schedules/:id (admin only)
func (h *ScheduleHandler) Update(c *gin.Context) {
	s, ok := h.fetch(c)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	s.Department = req.Department
	s.ClassCount = req.ClassCount
	s.StaffCount = req.StaffCount
	if req.Status != "" {
		s.Status = req.Status
	}
	if err := h.Repo.Update(c.Request.Context(), s); err != nil {
		h.Logger.WithError(err).WithField("schedule_id", s.ID).Error("schedule update failed")
		response.Error(c, http.StatusInternalServerError, "failed to update schedule", nil)
		return
	}
	h.logActivity(c, fmt.Sprintf("Schedule updated for %s", s.Department), "update", s.ID)
	response.Success(c, http.StatusOK, scheduleView(s), "schedule updated", nil)
}

// Delete DELETE /api/v1/schedules/:id (admin only)
func (h *ScheduleHandler) Delete(c *gin.Context) {
	s, ok := h.fetch(c)
	if !ok {
		return
	}
	if err := h.Repo.Delete(c.Request.Context(), s.ID); err != nil {
		h.Logger.WithError(err).WithField("schedule_id", s.ID).Error("schedule delete failed")
		response.Error(c, http.StatusInternalServerError, "failed to delete schedule", nil)
		return
	}
	h.logActivity(c, fmt.Sprintf("Schedule deleted for %s", s.Department), "delete", s.ID)
	response.Success[any](c, http.StatusOK, nil, "schedule deleted", nil)
}

func (h *ScheduleHandler) fetch(c *gin.Context) (*entity.Schedule, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid schedule id", nil)
		return nil, false
	}
	s, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "schedule not found", nil)
			return nil, false
		}
		h.Logger.WithError(err).Error("schedule fetch failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch schedule", nil)
		return nil, false
	}
	return s, true
}

func (h *ScheduleHandler) logActivity(c *gin.Context, title, action string, id int64) {
	h.Activity.Log(c.Request.Context(), title, actorName(c), action, "schedule", id)
}

// actorName is the display name used in the activity feed: the caller's
// department when set, otherwise their name.
func actorName(c *gin.Context) string {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return "system"
	}
	if u.Department != "" {
		return u.Department
	}
	return u.Name
}
