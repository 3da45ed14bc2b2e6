package models

import "time"

// Notification is the row shape of the notifications table.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         string    `db:"user_id"`
	Type           string    `db:"type"`
	Message        string    `db:"message"`
	RelatedID      string    `db:"related_id"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}

// ActivityLog is the row shape of the activity_logs table.
type ActivityLog struct {
	LogID       string    `db:"log_id"`
	UserID      string    `db:"user_id"`
	ActionType  string    `db:"action_type"`
	Module      string    `db:"module"`
	Description string    `db:"description"`
	EntityID    string    `db:"entity_id"`
	CreatedAt   time.Time `db:"created_at"`
}
