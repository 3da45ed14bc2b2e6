package dto

import (
	"time"

	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// NotificationResponse mirrors domain.Notification for API output.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Type           domain.NotificationType `json:"type"`
	Message        string                  `json:"message"`
	RelatedID      string                  `json:"relatedID"`
	IsRead         bool                    `json:"isRead"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its DTO
func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Message:        n.Message,
		RelatedID:      n.RelatedID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
