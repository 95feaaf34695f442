package repository

import (
	"context"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// DocumentRepository defines database operations for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	// List returns documents newest-first filtered by category (exact) and
	// search (case-insensitive partial title match), paginated by skip/limit.
	List(ctx context.Context, category, search string, skip, limit int) ([]*entity.Document, error)
	Delete(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
}
