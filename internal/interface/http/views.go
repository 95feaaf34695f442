package handlers

import (
	"strconv"
	"time"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// UserView is the wire shape for a user. The id is a string and the password
// hash never leaves the server.
type UserView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Avatar     string    `json:"avatar,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func userView(u *entity.User) UserView {
	return UserView{
		ID:         strconv.FormatInt(u.ID, 10),
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Avatar:     u.AvatarURL,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}

func userViews(us []*entity.User) []UserView {
	out := make([]UserView, 0, len(us))
	for _, u := range us {
		out = append(out, userView(u))
	}
	return out
}

type ScheduleView struct {
	ID          int64     `json:"id"`
	Department  string    `json:"department"`
	ClassCount  int       `json:"classCount"`
	StaffCount  int       `json:"staffCount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func scheduleView(s *entity.Schedule) ScheduleView {
	return ScheduleView{
		ID:          s.ID,
		Department:  s.Department,
		ClassCount:  s.ClassCount,
		StaffCount:  s.StaffCount,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		LastUpdated: s.LastUpdated,
	}
}

type DocumentView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"fileUrl"`
	FileSize    int64     `json:"fileSize"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func documentView(d *entity.Document) DocumentView {
	return DocumentView{
		ID:          d.ID,
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		FileURL:     d.FileURL,
		FileSize:    d.FileSize,
		UploadedBy:  strconv.FormatInt(d.UploadedBy, 10),
		CreatedAt:   d.CreatedAt,
	}
}

type NotificationView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func notificationView(n *entity.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

type PollOptionView struct {
	ID         int     `json:"id"`
	Text       string  `json:"text"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type PollView struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Options     []PollOptionView `json:"options"`
	IsActive    bool             `json:"isActive"`
	TotalVotes  int64            `json:"totalVotes"`
	CreatedAt   time.Time        `json:"createdAt"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
}

// pollView folds raw vote counts into per-option totals and percentages
// rounded to one decimal.
func pollView(p *entity.Poll, counts map[int]int64) PollView {
	var total int64
	for _, n := range counts {
		total += n
	}
	options := make([]PollOptionView, 0, len(p.Options))
	for _, o := range p.Options {
		votes := counts[o.ID]
		var pct float64
		if total > 0 {
			pct = float64(votes) / float64(total) * 100
			pct = float64(int(pct*10+0.5)) / 10
		}
		options = append(options, PollOptionView{ID: o.ID, Text: o.Text, Votes: votes, Percentage: pct})
	}
	return PollView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Options:     options,
		IsActive:    p.IsActive,
		TotalVotes:  total,
		CreatedAt:   p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
	}
}

type ActivityView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

func activityViews(as []*entity.Activity) []ActivityView {
	out := make([]ActivityView, 0, len(as))
	for _, a := range as {
		out = append(out, ActivityView{ID: a.ID, Title: a.Title, Author: a.Author, Timestamp: a.CreatedAt})
	}
	return out
}
