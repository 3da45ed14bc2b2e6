package repositories

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// NotificationRepository defines persistence for user notifications.
type NotificationRepository interface {
	// SaveNotification persists a notification row.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// ListNotificationsByUser retrieves a user's notifications, newest first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error)

	// MarkNotificationRead flags a notification as read.
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error
}

// ActivityLogRepository defines persistence for audit records.
type ActivityLogRepository interface {
	// SaveActivityLog persists an audit row.
	SaveActivityLog(ctx context.Context, log domain.ActivityLog) error
}
