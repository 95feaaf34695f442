package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	entityID := sql.NullInt64{Int64: a.EntityID, Valid: a.EntityID != 0}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (title, author, action_type, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.Title, a.Author, a.ActionType, nullable(a.EntityType), entityID)
	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, author, action_type, COALESCE(entity_type, ''), COALESCE(entity_id, 0), created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Activity, 0)
	for rows.Next() {
		a := &entity.Activity{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Author, &a.ActionType,
			&a.EntityType, &a.EntityID, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
