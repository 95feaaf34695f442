package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
)

// PollRepository stores polls with options as a jsonb array and votes in a
// separate table guarded by a (poll_id, user_id) unique constraint.
type PollRepository struct {
	pool *pgxpool.Pool
}

func NewPollRepository(pool *pgxpool.Pool) *PollRepository {
	return &PollRepository{pool: pool}
}

func scanPoll(row pgx.Row) (*entity.Poll, error) {
	p := &entity.Poll{}
	var options []byte
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &options,
		&p.IsActive, &p.ExpiresAt, &p.CreatedBy, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(options, &p.Options); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PollRepository) Create(ctx context.Context, p *entity.Poll) error {
	options, err := json.Marshal(p.Options)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO polls (title, description, options, is_active, expires_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, p.Title, p.Description, options, p.IsActive, p.ExpiresAt, p.CreatedBy)
	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *PollRepository) GetByID(ctx context.Context, id int64) (*entity.Poll, error) {
	return scanPoll(r.pool.QueryRow(ctx, `
		SELECT id, title, COALESCE(description, ''), options, is_active, expires_at, created_by, created_at
		FROM polls
		WHERE id = $1
	`, id))
}

func (r *PollRepository) List(ctx context.Context, active *bool) ([]*entity.Poll, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, COALESCE(description, ''), options, is_active, expires_at, created_by, created_at
		FROM polls
		WHERE $1::boolean IS NULL OR is_active = $1
		ORDER BY created_at DESC
	`, active)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	polls := make([]*entity.Poll, 0)
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

func (r *PollRepository) Close(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `UPDATE polls SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PollRepository) AddVote(ctx context.Context, v *entity.PollVote) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO poll_votes (poll_id, user_id, option_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, v.PollID, v.UserID, v.OptionID)
	if err := row.Scan(&v.ID, &v.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *PollRepository) HasVoted(ctx context.Context, pollID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM poll_votes WHERE poll_id = $1 AND user_id = $2)
	`, pollID, userID).Scan(&exists)
	return exists, err
}

func (r *PollRepository) VoteCounts(ctx context.Context, pollID int64) (map[int]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT option_id, count(*)
		FROM poll_votes
		WHERE poll_id = $1
		GROUP BY option_id
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var option int
		var n int64
		if err := rows.Scan(&option, &n); err != nil {
			return nil, err
		}
		counts[option] = n
	}
	return counts, rows.Err()
}

var _ repository.PollRepository = (*PollRepository)(nil)
