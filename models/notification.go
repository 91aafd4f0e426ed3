package models

// NotificationLevel is the severity of a user-facing notification.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Notification is a transient message shown to the user.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}
