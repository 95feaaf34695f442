package repository

import (
	"context"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// ScheduleRepository defines database operations for department schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, s *entity.Schedule) error
	GetByID(ctx context.Context, id int64) (*entity.Schedule, error)
	// List returns schedules newest-first. search is a case-insensitive
	// partial match on department; status an exact match. Either may be empty.
	List(ctx context.Context, search, status string) ([]*entity.Schedule, error)
	Update(ctx context.Context, s *entity.Schedule) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}
