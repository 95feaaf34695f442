package repository

import (
	"context"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// PollRepository defines database operations for polls and votes.
type PollRepository interface {
	Create(ctx context.Context, p *entity.Poll) error
	GetByID(ctx context.Context, id int64) (*entity.Poll, error)
	// List returns polls newest-first. active filters on is_active when
	// non-nil.
	List(ctx context.Context, active *bool) ([]*entity.Poll, error)
	Close(ctx context.Context, id int64) error
	// AddVote inserts a vote; returns ErrConflict when the user already voted
	// on the poll.
	AddVote(ctx context.Context, v *entity.PollVote) error
	HasVoted(ctx context.Context, pollID, userID int64) (bool, error)
	// VoteCounts returns a map of option id to number of votes for the poll.
	VoteCounts(ctx context.Context, pollID int64) (map[int]int64, error)
}
