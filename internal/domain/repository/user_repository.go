package repository

import (
	"context"
	"time"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Email lookups are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context, department string, skip, limit int) ([]*entity.User, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
