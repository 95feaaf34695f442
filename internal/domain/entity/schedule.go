package entity

import "time"

// Schedule represents a department's class schedule.
type Schedule struct {
	ID          int64
	Department  string
	ClassCount  int
	StaffCount  int
	Status      string // Active, Draft, Archived
	CreatedAt   time.Time
	LastUpdated time.Time
}
