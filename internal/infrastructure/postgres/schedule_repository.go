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

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func scanSchedule(row pgx.Row) (*entity.Schedule, error) {
	s := &entity.Schedule{}
	if err := row.Scan(&s.ID, &s.Department, &s.ClassCount, &s.StaffCount,
		&s.Status, &s.CreatedAt, &s.LastUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, s *entity.Schedule) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO schedules (department, class_count, staff_count, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, last_updated
	`, s.Department, s.ClassCount, s.StaffCount, s.Status)
	return row.Scan(&s.ID, &s.CreatedAt, &s.LastUpdated)
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*entity.Schedule, error) {
	return scanSchedule(r.pool.QueryRow(ctx, `
		SELECT id, department, class_count, staff_count, status, created_at, last_updated
		FROM schedules
		WHERE id = $1
	`, id))
}

func (r *ScheduleRepository) List(ctx context.Context, search, status string) ([]*entity.Schedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, department, class_count, staff_count, status, created_at, last_updated
		FROM schedules
		WHERE ($1 = '' OR department ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR status = $2)
		ORDER BY last_updated DESC
	`, search, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*entity.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *ScheduleRepository) Update(ctx context.Context, s *entity.Schedule) error {
	s.LastUpdated = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE schedules
		SET department = $1, class_count = $2, staff_count = $3, status = $4, last_updated = $5
		WHERE id = $6
	`, s.Department, s.ClassCount, s.StaffCount, s.Status, s.LastUpdated, s.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM schedules WHERE status = $1`, status).Scan(&n)
	return n, err
}

var _ repository.ScheduleRepository = (*ScheduleRepository)(nil)
