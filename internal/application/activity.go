package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
)

// ActivityLogger appends entries to the dashboard activity feed. Logging is
// best-effort: a failed insert is logged and swallowed so it never fails the
// operation that triggered it.
type ActivityLogger struct {
	Repo   repository.ActivityRepository
	Logger *logrus.Logger
}

func NewActivityLogger(repo repository.ActivityRepository, logger *logrus.Logger) *ActivityLogger {
	return &ActivityLogger{Repo: repo, Logger: logger}
}

func (l *ActivityLogger) Log(ctx context.Context, title, author, actionType, entityType string, entityID int64) {
	a := &entity.Activity{
		Title:      title,
		Author:     author,
		ActionType: actionType,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if err := l.Repo.Create(ctx, a); err != nil && l.Logger != nil {
		l.Logger.WithError(err).WithField("title", title).Warn("activity log failed")
	}
}

func (l *ActivityLogger) Recent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return l.Repo.ListRecent(ctx, limit)
}
