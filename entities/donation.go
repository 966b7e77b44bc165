package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	DonationStatusAvailable = "AVAILABLE"
	DonationStatusRequested = "REQUESTED"
	DonationStatusAccepted  = "ACCEPTED"
	DonationStatusAllocated = "ALLOCATED"
	DonationStatusPickedUp  = "PICKED_UP"
	DonationStatusCompleted = "COMPLETED"
	DonationStatusCancelled = "CANCELLED"
	DonationStatusExpired   = "EXPIRED"
)

// AcceptedBy is a point-in-time snapshot of the most recent decision-maker.
// Denormalized for display; the user id reference stays authoritative.
type AcceptedBy struct {
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	Name           string     `json:"name,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Role           string     `json:"role,omitempty"` // NGO or VOLUNTEER
	Rejected       bool       `json:"rejected"`
}

type Donation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DonorID        uuid.UUID  `json:"donor_id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`

	FoodType     string `json:"food_type"`
	FoodCategory string `json:"food_category"` // COOKED, RAW, PACKAGED, BEVERAGES, DAIRY, BAKERY, FRUITS, VEGETABLES
	Quantity     int    `json:"quantity"`      // immutable after creation
	Unit         string `json:"unit"`          // KG, LITER, PIECES, DOZEN, BOXES
	Description  string `json:"description,omitempty"`

	PreparationDate  time.Time `json:"preparation_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	StorageCondition string    `json:"storage_condition,omitempty"`

	LocationLatitude  *float64 `json:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty"`
	Address           string   `json:"address"`
	City              string   `json:"city"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email,omitempty"`

	ImageURL string `json:"image_url,omitempty"`

	Status            string     `gorm:"default:AVAILABLE" json:"status"`
	AvailabilityCount int        `json:"availability_count"`
	AcceptedBy        AcceptedBy `gorm:"embedded;embeddedPrefix:accepted_by_" json:"accepted_by"`

	Donor          *User            `gorm:"foreignKey:DonorID"`
	Organization   *Organization    `gorm:"foreignKey:OrganizationID"`
	PickupRequests []*PickupRequest `gorm:"foreignKey:DonationID"`
	Timestamp
}
