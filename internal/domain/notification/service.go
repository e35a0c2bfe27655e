package notification

import (
	"context"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/sse"
)

// Service queues notifications for async batch persistence and fans them out
// to in-app SSE subscribers. Delivery to external push channels is out of
// scope; this is the alert sink the overtime sweep writes into.
type Service interface {
	// QueueNotification enqueues a notification for background processing.
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	// GetNotifications returns a page of a user's notifications.
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)

	// MarkAsRead marks the given notifications read for the user.
	MarkAsRead(ctx context.Context, userID string, ids []string) error

	// Subscribe registers an SSE subscriber for the user's notifications.
	Subscribe(userID string) (<-chan sse.Event, func())

	// Stop drains the queue and stops the background workers.
	Stop()
}
