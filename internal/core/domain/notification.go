package domain

import "time"

// NotificationLevel classifies a notification for display.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
	NotifyInfo    NotificationLevel = "info"
)

// Notification is a human-readable event addressed to a user, produced by
// mutation outcomes (task moves, ticket updates) and delivered best-effort.
type Notification struct {
	ID          string            `json:"id,omitempty"`
	RecipientID string            `json:"recipient_id"`
	Level       NotificationLevel `json:"level"`
	Message     string            `json:"message"`
	CreatedAt   time.Time         `json:"created_at"`
}
