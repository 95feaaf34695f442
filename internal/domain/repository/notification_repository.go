package repository

import (
	"context"
	"time"

	"github.com/nextstep/school-api/internal/domain/entity"
)

// NotificationRepository defines database operations for per-user
// notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	CreateBatch(ctx context.Context, ns []*entity.Notification) error
	// ListForUser returns the user's notifications newest-first; unreadOnly
	// restricts to unread ones.
	ListForUser(ctx context.Context, userID int64, unreadOnly bool, skip, limit int) ([]*entity.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	// MarkRead marks one notification read; scoped to the owning user and
	// returns ErrNotFound when the notification is missing or owned by
	// someone else.
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
