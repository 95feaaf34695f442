package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/pkg/helpers"
)

const statsCacheKey = "dashboard:stats"
const statsCacheTTL = time.Minute

// DashboardStats aggregates the counters shown on the landing page.
type DashboardStats struct {
	TotalStaff        int64  `json:"totalStaff"`
	StaffTrend        string `json:"staffTrend"`
	ActiveSchedules   int64  `json:"activeSchedules"`
	NotificationsSent int64  `json:"notificationsSent"`
	TotalDocuments    int64  `json:"totalDocuments"`
}

// DashboardService computes dashboard statistics, caching the result in
// redis for a minute. Staleness within the TTL is acceptable.
type DashboardService struct {
	Users         repository.UserRepository
	Schedules     repository.ScheduleRepository
	Documents     repository.DocumentRepository
	Notifications repository.NotificationRepository
	Redis         *redis.Client
	Logger        *logrus.Logger
}

func NewDashboardService(users repository.UserRepository, schedules repository.ScheduleRepository,
	documents repository.DocumentRepository, notifications repository.NotificationRepository,
	rdb *redis.Client, logger *logrus.Logger) *DashboardService {
	return &DashboardService{
		Users:         users,
		Schedules:     schedules,
		Documents:     documents,
		Notifications: notifications,
		Redis:         rdb,
		Logger:        logger,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.Redis != nil {
		var cached DashboardStats
		if ok, err := helpers.CacheGetJSON(ctx, s.Redis, statsCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)

	totalStaff, err := s.Users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	newStaff, err := s.Users.CountCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	activeSchedules, err := s.Schedules.CountByStatus(ctx, "Active")
	if err != nil {
		return nil, err
	}
	notificationsSent, err := s.Notifications.CountCreatedSince(ctx, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}
	totalDocuments, err := s.Documents.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalStaff:        totalStaff,
		StaffTrend:        fmt.Sprintf("+%d this month", newStaff),
		ActiveSchedules:   activeSchedules,
		NotificationsSent: notificationsSent,
		TotalDocuments:    totalDocuments,
	}

	if s.Redis != nil {
		if err := helpers.CacheSetJSON(ctx, s.Redis, statsCacheKey, stats, statsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("dashboard stats cache write failed")
		}
	}
	return stats, nil
}
