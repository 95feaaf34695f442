package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/application"
	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/internal/interface/middleware"
	"github.com/nextstep/school-api/pkg/response"
	"github.com/nextstep/school-api/pkg/validation"
)

type PollHandler struct {
	Repo     repository.PollRepository
	Activity *application.ActivityLogger
	Logger   *logrus.Logger
}

func NewPollHandler(repo repository.PollRepository, activity *application.ActivityLogger, logger *logrus.Logger) *PollHandler {
	return &PollHandler{Repo: repo, Activity: activity, Logger: logger}
}

type createPollRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Options     []string   `json:"options" binding:"required,min=2,dive,required"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type voteRequest struct {
	OptionID int `json:"optionId" binding:"required"`
}

// List GET /api/v1/polls?status=active|completed
func (h *PollHandler) List(c *gin.Context) {
	var active *bool
	switch c.Query("status") {
	case "active":
		t := true
		active = &t
	case "completed":
		f := false
		active = &f
	}
	polls, err := h.Repo.List(c.Request.Context(), active)
	if err != nil {
		h.Logger.WithError(err).Error("poll list failed")
		response.Error(c, http.StatusInternalServerError, "failed to list polls", nil)
		return
	}
	views := make([]PollView, 0, len(polls))
	for _, p := range polls {
		counts, err := h.Repo.VoteCounts(c.Request.Context(), p.ID)
		if err != nil {
			h.Logger.WithError(err).WithField("poll_id", p.ID).Error("vote counts failed")
			response.Error(c, http.StatusInternalServerError, "failed to list polls", nil)
			return
		}
		views = append(views, pollView(p, counts))
	}
	response.Success(c, http.StatusOK, views, "polls", nil)
}

// Get GET /api/v1/polls/:id
func (h *PollHandler) Get(c *gin.Context) {
	p, ok := h.fetch(c)
	if !ok {
		return
	}
	counts, err := h.Repo.VoteCounts(c.Request.Context(), p.ID)
	if err != nil {
		h.Logger.WithError(err).WithField("poll_id", p.ID).Error("vote counts failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch poll", nil)
		return
	}
	response.Success(c, http.StatusOK, pollView(p, counts), "poll", nil)
}

// Create POST /api/v1/polls (admin only). Option ids are assigned
// sequentially from 1 in request order.
func (h *PollHandler) Create(c *gin.Context) {
	var req createPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, _ := middleware.CurrentUser(c)
	options := make([]entity.PollOption, 0, len(req.Options))
	for i, text := range req.Options {
		options = append(options, entity.PollOption{ID: i + 1, Text: text})
	}
	p := &entity.Poll{
		Title:       req.Title,
		Description: req.Description,
		Options:     options,
		IsActive:    true,
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   u.ID,
	}
	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		h.Logger.WithError(err).Error("poll create failed")
		response.Error(c, http.StatusInternalServerError, "failed to create poll", nil)
		return
	}
	h.Activity.Log(c.Request.Context(), fmt.Sprintf("Poll created: %s", p.Title), actorName(c), "create", "poll", p.ID)
	response.Success(c, http.StatusCreated, pollView(p, nil), "poll created", nil)
}

// Vote POST /api/v1/polls/:id/vote. Rejects closed or expired polls and
// unknown options with 400, and a second vote by the same user with 409.
func (h *PollHandler) Vote(c *gin.Context) {
	p, ok := h.fetch(c)
	if !ok {
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if !p.IsActive {
		response.Error(c, http.StatusBadRequest, "poll is closed", nil)
		return
	}
	if p.Expired(time.Now()) {
		response.Error(c, http.StatusBadRequest, "poll has expired", nil)
		return
	}
	if !p.HasOption(req.OptionID) {
		response.Error(c, http.StatusBadRequest, "invalid option", nil)
		return
	}
	u, _ := middleware.CurrentUser(c)
	if voted, err := h.Repo.HasVoted(c.Request.Context(), p.ID, u.ID); err == nil && voted {
		response.Error(c, http.StatusConflict, "already voted on this poll", nil)
		return
	}
	// The unique constraint still catches votes racing past the check.
	vote := &entity.PollVote{PollID: p.ID, UserID: u.ID, OptionID: req.OptionID}
	if err := h.Repo.AddVote(c.Request.Context(), vote); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			response.Error(c, http.StatusConflict, "already voted on this poll", nil)
			return
		}
		h.Logger.WithError(err).WithField("poll_id", p.ID).Error("vote insert failed")
		response.Error(c, http.StatusInternalServerError, "failed to record vote", nil)
		return
	}
	counts, err := h.Repo.VoteCounts(c.Request.Context(), p.ID)
	if err != nil {
		h.Logger.WithError(err).WithField("poll_id", p.ID).Error("vote counts failed")
		response.Error(c, http.StatusInternalServerError, "failed to record vote", nil)
		return
	}
	response.Success(c, http.StatusOK, pollView(p, counts), "vote recorded", nil)
}

// Close PATCH /api/v1/polls/:id/close (admin only)
func (h *PollHandler) Close(c *gin.Context) {
	p, ok := h.fetch(c)
	if !ok {
		return
	}
	if err := h.Repo.Close(c.Request.Context(), p.ID); err != nil {
		h.Logger.WithError(err).WithField("poll_id", p.ID).Error("poll close failed")
		response.Error(c, http.StatusInternalServerError, "failed to close poll", nil)
		return
	}
	p.IsActive = false
	h.Activity.Log(c.Request.Context(), fmt.Sprintf("Poll closed: %s", p.Title), actorName(c), "update", "poll", p.ID)
	counts, err := h.Repo.VoteCounts(c.Request.Context(), p.ID)
	if err != nil {
		counts = nil
	}
	response.Success(c, http.StatusOK, pollView(p, counts), "poll closed", nil)
}

func (h *PollHandler) fetch(c *gin.Context) (*entity.Poll, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid poll id", nil)
		return nil, false
	}
	p, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "poll not found", nil)
			return nil, false
		}
		h.Logger.WithError(err).Error("poll fetch failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch poll", nil)
		return nil, false
	}
	return p, true
}
