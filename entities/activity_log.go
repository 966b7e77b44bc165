package entities

import (
	"github.com/google/uuid"
)

const (
	ActivityCreated   = "CREATED"
	ActivityAccepted  = "ACCEPTED"
	ActivityRejected  = "REJECTED"
	ActivityPickedUp  = "PICKED_UP"
	ActivityCompleted = "COMPLETED"
	ActivityCancelled = "CANCELLED"
)

type ActivityLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"index" json:"user_id"`
	DonationID uuid.UUID `gorm:"index" json:"donation_id"`

	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
	Details     string `gorm:"type:text" json:"details,omitempty"`

	User     *User     `gorm:"foreignKey:UserID"`
	Donation *Donation `gorm:"foreignKey:DonationID"`
	Timestamp
}
