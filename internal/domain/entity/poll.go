package entity

import "time"

// PollOption is one selectable answer. Options are stored on the poll row as
// a jsonb array, not a separate table.
type PollOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Poll represents a voting poll with multiple options.
type Poll struct {
	ID          int64
	Title       string
	Description string
	Options     []PollOption
	IsActive    bool
	ExpiresAt   *time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

// HasOption reports whether optionID is one of the poll's options.
func (p *Poll) HasOption(optionID int) bool {
	for _, o := range p.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// Expired reports whether the poll's deadline has passed at time now.
func (p *Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// PollVote is a single user's vote. One vote per user per poll, enforced by
// a unique constraint on (poll_id, user_id).
type PollVote struct {
	ID        int64
	PollID    int64
	UserID    int64
	OptionID  int
	CreatedAt time.Time
}
