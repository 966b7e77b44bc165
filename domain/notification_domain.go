package domain

import (
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notifications marked as read"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkRead         = "failed to mark notifications as read"
)

type Notification struct {
	ID                string    `json:"id"`
	Type              string    `json:"type"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	RelatedEntityID   string    `json:"related_entity_id,omitempty"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
}
