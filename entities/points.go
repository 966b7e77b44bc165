package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PointsTypeDonation          = "DONATION"
	PointsTypePickup            = "PICKUP"
	PointsTypeVolunteerActivity = "VOLUNTEER_ACTIVITY"
	PointsTypeRedemption        = "REDEMPTION"
	PointsTypeBonus             = "BONUS"
	PointsTypeAdjustment        = "ADJUSTMENT"
)

// PointsTransaction is an append-only ledger row. Reversal never deletes or
// inserts; it flips IsReversed exactly once and re-applies the inverse delta
// to the user's balance.
type PointsTransaction struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"index" json:"user_id"`

	TransactionType string `json:"transaction_type"`
	Points          int    `json:"points"` // signed; negative for redemptions
	Description     string `json:"description,omitempty"`

	RelatedDonationID      *uuid.UUID `json:"related_donation_id,omitempty"`
	RelatedPickupRequestID *uuid.UUID `json:"related_pickup_request_id,omitempty"`

	IsReversed     bool       `gorm:"default:false" json:"is_reversed"`
	ReversalReason string     `json:"reversal_reason,omitempty"`
	ReversedAt     *time.Time `json:"reversed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
