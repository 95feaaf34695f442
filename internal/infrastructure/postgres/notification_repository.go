package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	n := &entity.Notification{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
		&n.IsRead, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at
	`, n.UserID, n.Title, n.Message, n.Type)
	return row.Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// CreateBatch inserts the notifications in a single batch round-trip; used by
// broadcast.
func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*entity.Notification) error {
	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(`
			INSERT INTO notifications (user_id, title, message, type)
			VALUES ($1, $2, $3, $4)
		`, n.UserID, n.Title, n.Message, n.Type)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, unreadOnly bool, skip, limit int) ([]*entity.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR is_read = false)
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`, userID, unreadOnly, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM notifications WHERE user_id = $1 AND is_read = false
	`, userID).Scan(&n)
	return n, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false
	`, userID)
	return err
}

func (r *NotificationRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM notifications WHERE created_at >= $1
	`, since).Scan(&n)
	return n, err
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
