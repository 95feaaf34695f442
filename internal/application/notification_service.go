package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/pkg/helpers"
	"github.com/nextstep/school-api/pkg/mailer"
)

const unreadCacheTTL = 30 * time.Second

func unreadCacheKey(userID int64) string {
	return fmt.Sprintf("notif:unread:%d", userID)
}

// NotificationService delivers in-app notifications and optionally fans the
// same content out as email jobs on RabbitMQ. Unread counts are cached in
// redis with a short TTL; writes invalidate the owner's entry.
type NotificationService struct {
	Repo        repository.NotificationRepository
	Users       repository.UserRepository
	Redis       *redis.Client
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	Logger      *logrus.Logger
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository,
	rdb *redis.Client, pub *helpers.RabbitPublisher, mailEnabled bool, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: repo, Users: users, Redis: rdb, Pub: pub, MailEnabled: mailEnabled, Logger: logger}
}

// Send delivers one notification to one user. The target must exist.
func (s *NotificationService) Send(ctx context.Context, n *entity.Notification) error {
	target, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	s.invalidateUnread(ctx, n.UserID)
	s.enqueueEmail(ctx, target.Email, n)
	return nil
}

// Broadcast delivers the notification to every user and returns how many
// were reached.
func (s *NotificationService) Broadcast(ctx context.Context, title, message, notifType string) (int, error) {
	users, err := s.Users.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	ns := make([]*entity.Notification, 0, len(users))
	for _, u := range users {
		ns = append(ns, &entity.Notification{UserID: u.ID, Title: title, Message: message, Type: notifType})
	}
	if err := s.Repo.CreateBatch(ctx, ns); err != nil {
		return 0, err
	}
	for _, u := range users {
		s.invalidateUnread(ctx, u.ID)
		// Email fan-out goes through the queue; the worker does the sends.
		s.enqueueEmail(ctx, u.Email, &entity.Notification{Title: title, Message: message})
	}
	return len(users), nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64, unreadOnly bool, skip, limit int) ([]*entity.Notification, error) {
	return s.Repo.ListForUser(ctx, userID, unreadOnly, skip, limit)
}

// UnreadCount returns the user's unread total, served from redis when fresh.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if s.Redis != nil {
		var cached int64
		if ok, err := helpers.CacheGetJSON(ctx, s.Redis, unreadCacheKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}
	n, err := s.Repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.Redis != nil {
		_ = helpers.CacheSetJSON(ctx, s.Redis, unreadCacheKey(userID), n, unreadCacheTTL)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if err := s.Repo.MarkRead(ctx, id, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.Repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID int64) {
	if s.Redis == nil {
		return
	}
	if err := helpers.CacheDel(ctx, s.Redis, unreadCacheKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("unread cache invalidation failed")
	}
}

func (s *NotificationService) enqueueEmail(ctx context.Context, to string, n *entity.Notification) {
	if !s.MailEnabled || s.Pub == nil || to == "" {
		return
	}
	job := mailer.EmailJob{To: to, Subject: n.Title, Text: n.Message}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", to).Warn("email job publish failed")
	}
}
