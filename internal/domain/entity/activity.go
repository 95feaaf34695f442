package entity

import "time"

// Activity is one entry in the recent-activity feed shown on the dashboard.
type Activity struct {
	ID         int64
	Title      string // what happened, e.g. "Schedule Created: Mathematics"
	Author     string // who did it, department or user name
	ActionType string // create, update, delete, upload, close
	EntityType string // schedule, document, poll; empty for system events
	EntityID   int64
	CreatedAt  time.Time
}
