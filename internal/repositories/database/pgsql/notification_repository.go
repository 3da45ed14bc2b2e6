package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knitworks/garment_mgmt_app/internal/apperrors"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
	portsrepo "github.com/knitworks/garment_mgmt_app/internal/core/ports/repositories"
	"github.com/knitworks/garment_mgmt_app/internal/models"
)

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxNotificationRepository creates a new repository for notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{pool: pool}
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

// SaveNotification persists a notification row.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, type, message, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		string(n.Type),
		n.Message,
		n.RelatedID,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", n.NotificationID, err)
	}
	return nil
}

// ListNotificationsByUser retrieves a user's notifications, newest first.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT notification_id, user_id, type, message, related_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(&m.NotificationID, &m.UserID, &m.Type, &m.Message, &m.RelatedID, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, domain.Notification{
			NotificationID: m.NotificationID,
			UserID:         m.UserID,
			Type:           domain.NotificationType(m.Type),
			Message:        m.Message,
			RelatedID:      m.RelatedID,
			IsRead:         m.IsRead,
			CreatedAt:      m.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flags a notification as read. The user filter keeps a
// user from touching someone else's notification.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2;`
	ct, err := r.pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxActivityLogRepository struct {
	pool *pgxpool.Pool
}

// newPgxActivityLogRepository creates a new repository for audit records.
func newPgxActivityLogRepository(pool *pgxpool.Pool) portsrepo.ActivityLogRepository {
	return &PgxActivityLogRepository{pool: pool}
}

var _ portsrepo.ActivityLogRepository = (*PgxActivityLogRepository)(nil)

// SaveActivityLog persists an audit row.
func (r *PgxActivityLogRepository) SaveActivityLog(ctx context.Context, log domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (log_id, user_id, action_type, module, description, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		log.LogID,
		log.UserID,
		log.ActionType,
		log.Module,
		log.Description,
		log.EntityID,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity log %s: %w", log.LogID, err)
	}
	return nil
}
