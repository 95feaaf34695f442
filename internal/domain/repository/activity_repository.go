package repository

import (
	"context"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// ActivityRepository defines database operations for the activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error)
}
