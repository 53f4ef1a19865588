package domain

import "time"

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a user-facing message. Raw errors never end up in Message.
type Notification struct {
	ID        string           `json:"id"`
	SessionID string           `json:"-"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	AttemptID string           `json:"attempt_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
