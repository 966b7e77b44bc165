package entities

import (
	"github.com/google/uuid"
)

const (
	NotificationDonationAvailable    = "DONATION_AVAILABLE"
	NotificationDonationAccepted     = "DONATION_ACCEPTED"
	NotificationDonationRejected     = "DONATION_REJECTED"
	NotificationRequestReceived      = "REQUEST_RECEIVED"
	NotificationPickupConfirmed      = "PICKUP_CONFIRMED"
	NotificationDonationPicked       = "DONATION_PICKED"
	NotificationRatingReceived       = "RATING_RECEIVED"
	NotificationOrganizationApproved = "ORGANIZATION_APPROVED"
	NotificationOrganizationRejected = "ORGANIZATION_REJECTED"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`

	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`

	RelatedEntityID   *uuid.UUID `gorm:"index" json:"related_entity_id,omitempty"`
	RelatedEntityType string     `json:"related_entity_type,omitempty"` // Donation, PickupRequest, Organization

	IsRead   bool   `gorm:"default:false" json:"is_read"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
