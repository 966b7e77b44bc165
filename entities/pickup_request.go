package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PickupStatusPending   = "PENDING"
	PickupStatusConfirmed = "CONFIRMED"
	PickupStatusPickedUp  = "PICKED_UP"
	PickupStatusCancelled = "CANCELLED"
	PickupStatusRejected  = "REJECTED"
)

type PickupRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DonationID     uuid.UUID  `json:"donation_id"`
	ReceiverID     uuid.UUID  `json:"receiver_id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`

	RequestedQuantity int    `json:"requested_quantity"`
	Status            string `gorm:"default:PENDING" json:"status"`

	PickupDate          *time.Time `json:"pickup_date,omitempty"`
	PickupTime          string     `json:"pickup_time,omitempty"` // HH:MM
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	RejectionReason     string     `json:"rejection_reason,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`

	Donation     *Donation     `gorm:"foreignKey:DonationID"`
	Receiver     *User         `gorm:"foreignKey:ReceiverID"`
	Organization *Organization `gorm:"foreignKey:OrganizationID"`
	Timestamp
}
