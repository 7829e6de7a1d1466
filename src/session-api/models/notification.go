package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationLevel string

const (
	NotificationLevelInfo    NotificationLevel = "info"
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelError   NotificationLevel = "error"
)

// Notification is a user-facing message, the equivalent of a dashboard toast.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
}

func NewNotification(level NotificationLevel, title, message string, timestamp time.Time) *Notification {
	return &Notification{
		ID:        uuid.New(),
		Level:     level,
		Title:     title,
		Message:   message,
		Timestamp: timestamp,
	}
}
