package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/knitworks/garment_mgmt_app/internal/adapters/webhook"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
)

// notifierServiceImpl implements the NotifierSvc interface. Notifications are
// best effort: a failed save or webhook push is logged and never propagated to
// the operation that produced it.
type notifierServiceImpl struct {
	BaseService
	notificationRepo portsrepo.NotificationRepository
	webhookClient    *webhook.Client
}

// NewNotifierService creates a new notifier. webhookClient may be nil when no
// webhook endpoint is configured.
func NewNotifierService(notificationRepo portsrepo.NotificationRepository, webhookClient *webhook.Client) portssvc.NotifierSvc {
	return &notifierServiceImpl{
		notificationRepo: notificationRepo,
		webhookClient:    webhookClient,
	}
}

// Ensure notifierServiceImpl implements the NotifierSvc interface
var _ portssvc.NotifierSvc = (*notifierServiceImpl)(nil)

func (s *notifierServiceImpl) Notify(ctx context.Context, userID string, notifyType domain.NotificationType, message string, referenceID string) {
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           notifyType,
		Message:        message,
		RelatedID:      referenceID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to save notification",
			slog.String("user_id", userID),
			slog.String("type", string(notifyType)))
		return
	}

	if s.webhookClient != nil {
		if err := s.webhookClient.Send(ctx, n); err != nil {
			s.LogError(ctx, err, "Failed to push notification webhook",
				slog.String("notification_id", n.NotificationID))
		}
	}
}

func (s *notifierServiceImpl) ListForUser(ctx context.Context, actor domain.Actor, limit int) ([]domain.Notification, error) {
	return s.notificationRepo.ListNotificationsByUser(ctx, actor.UserID, limit, 0)
}

func (s *notifierServiceImpl) MarkRead(ctx context.Context, actor domain.Actor, notificationID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, actor.UserID)
}
