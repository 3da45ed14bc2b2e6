package domain

import "time"

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	NotifyFundReceived   NotificationType = "FUND_RECEIVED"
	NotifyReturnApproved NotificationType = "RETURN_APPROVED"
	NotifyReturnRejected NotificationType = "RETURN_REJECTED"
	NotifyStockIncoming  NotificationType = "STOCK_INCOMING"
	NotifyStockConfirmed NotificationType = "STOCK_CONFIRMED"
)

// Notification is a best-effort message to a user. Delivery failures never
// roll back the operation that produced the notification.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	RelatedID      string           `json:"relatedID"` // Entity the notification refers to
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ActivityLog is a fire-and-forget audit record of a core mutation.
type ActivityLog struct {
	LogID       string    `json:"logID"` // Primary Key (UUID)
	UserID      string    `json:"userID"`
	ActionType  string    `json:"actionType"` // e.g. "transfer_funds"
	Module      string    `json:"module"`     // e.g. "funds", "inventory"
	Description string    `json:"description"`
	EntityID    string    `json:"entityID"`
	CreatedAt   time.Time `json:"createdAt"`
}
