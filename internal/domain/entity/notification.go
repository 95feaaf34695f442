package entity

import "time"

// Notification is a per-user message. Type is one of info, success, warning,
// error.
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}
