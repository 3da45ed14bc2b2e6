package services

import (
	"context"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// NotifierSvc records in-app notifications and pushes them to the optional
// webhook sink. Delivery failures are logged, never surfaced to callers.
type NotifierSvc interface {
	Notify(ctx context.Context, userID string, notifyType domain.NotificationType, message string, referenceID string)
	ListForUser(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, actor domain.Actor, notificationID string) error
}

// ActivityLogSvc records audit entries for state-changing operations.
type ActivityLogSvc interface {
	Record(ctx context.Context, actorID string, action string, entityType string, entityID string, details string)
}
