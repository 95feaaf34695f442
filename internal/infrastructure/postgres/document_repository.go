package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	d := &entity.Document{}
	if err := row.Scan(&d.ID, &d.Title, &d.Category, &d.Description,
		&d.FileURL, &d.FileSize, &d.UploadedBy, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO documents (title, category, description, file_url, file_size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, d.Title, d.Category, d.Description, d.FileURL, d.FileSize, d.UploadedBy)
	return row.Scan(&d.ID, &d.CreatedAt)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	return scanDocument(r.pool.QueryRow(ctx, `
		SELECT id, title, category, COALESCE(description, ''), file_url, file_size, uploaded_by, created_at
		FROM documents
		WHERE id = $1
	`, id))
}

func (r *DocumentRepository) List(ctx context.Context, category, search string, skip, limit int) ([]*entity.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, category, COALESCE(description, ''), file_url, file_size, uploaded_by, created_at
		FROM documents
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`, category, search, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*entity.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM documents`).Scan(&n)
	return n, err
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)
