package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/application"
	"github.com/nextstep/school-api/pkg/response"
)

type DashboardHandler struct {
	Svc         *application.DashboardService
	ActivityLog *application.ActivityLogger
	Logger      *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, activity *application.ActivityLogger, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, ActivityLog: activity, Logger: logger}
}

// Stats GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("dashboard stats failed")
		response.Error(c, http.StatusInternalServerError, "failed to compute stats", nil)
		return
	}
	response.Success(c, http.StatusOK, stats, "dashboard stats", nil)
}

// Activity GET /api/v1/dashboard/activity?limit=
func (h *DashboardHandler) Activity(c *gin.Context) {
	limit := intQuery(c, "limit", 20, 1, 100)
	as, err := h.ActivityLog.Recent(c.Request.Context(), limit)
	if err != nil {
		h.Logger.WithError(err).Error("activity feed failed")
		response.Error(c, http.StatusInternalServerError, "failed to load activity", nil)
		return
	}
	response.Success(c, http.StatusOK, activityViews(as), "recent activity", nil)
}
