package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/notification"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	created []*notification.Notification
	batches int
}

func (r *fakeRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, notifications...)
	r.batches++
	return nil
}

func (r *fakeRepo) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (r *fakeRepo) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	return nil
}

func (r *fakeRepo) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func alertReq(recipientID string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		CompanyID:   "company-1",
		RecipientID: recipientID,
		Type:        notification.TypeOvertimeAlert,
		Title:       "Overtime",
		Message:     "Daily working time exceeded",
	}
}

func TestStop_PersistsBufferedRequests(t *testing.T) {
	repo := &fakeRepo{}
	hub := sse.NewHub()
	// Large batch and a flush interval that never fires inside the test:
	// only the shutdown path can persist anything.
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     10,
	})

	events, cleanup := svc.Subscribe("user-1")
	defer cleanup()

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.QueueNotification(context.Background(), alertReq("user-1")))
	}

	svc.Stop()

	assert.Equal(t, 5, repo.createdCount(), "buffered requests must survive shutdown")
	assert.Len(t, events, 5, "persisted notifications are pushed to subscribers")
}

func TestWorker_FlushesOnBatchSize(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     2,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.QueueNotification(context.Background(), alertReq("user-1")))
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.createdCount() < 4 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 4, repo.createdCount())
}
