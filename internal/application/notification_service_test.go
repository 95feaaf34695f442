package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
)

type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	byUser map[int64][]*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, byUser: map[int64][]*entity.Notification{}}
}

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now()
	cp := *n
	f.byUser[n.UserID] = append(f.byUser[n.UserID], &cp)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, ns []*entity.Notification) error {
	for _, n := range ns {
		if err := f.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ListForUser(_ context.Context, userID int64, unreadOnly bool, skip, limit int) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Notification, 0)
	for _, n := range f.byUser[userID] {
		if unreadOnly && n.IsRead {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, it := range f.byUser[userID] {
		if !it.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.byUser[userID] {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.byUser[userID] {
		n.IsRead = true
	}
	return nil
}

func (f *fakeNotificationRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, list := range f.byUser {
		for _, it := range list {
			if !it.CreatedAt.Before(since) {
				n++
			}
		}
	}
	return n, nil
}

// countingUserRepo tracks how the service reads users so tests can pin
// broadcast delivery to one list query.
type countingUserRepo struct {
	*fakeUserRepo
	listAllCalls int
	getByIDCalls int
}

func (r *countingUserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	r.listAllCalls++
	return r.fakeUserRepo.ListAll(ctx)
}

func (r *countingUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.getByIDCalls++
	return r.fakeUserRepo.GetByID(ctx, id)
}

func TestBroadcastReachesEveryUserWithOneListQuery(t *testing.T) {
	users := &countingUserRepo{fakeUserRepo: newFakeUserRepo()}
	ctx := context.Background()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, users.Create(ctx, &entity.User{Email: email, Name: "U", Role: entity.RoleStudent}))
	}
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, users, nil, nil, false, nil)

	n, err := svc.Broadcast(ctx, "Exam week", "Schedules are out", "info")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, users.listAllCalls)
	assert.Zero(t, users.getByIDCalls)

	for id := int64(1); id <= 3; id++ {
		got, err := repo.ListForUser(ctx, id, true, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Exam week", got[0].Title)
	}
}

func TestSendUnknownUser(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), newFakeUserRepo(), nil, nil, false, nil)

	err := svc.Send(context.Background(), &entity.Notification{UserID: 42, Title: "T", Message: "M", Type: "info"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
