package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleDonor     = "DONOR"
	RoleNGO       = "NGO"
	RoleVolunteer = "VOLUNTEER"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash    string    `json:"-"`
	Phone           string    `json:"phone,omitempty"`
	Role            string    `json:"role"` // DONOR, NGO, VOLUNTEER, ADMIN
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`

	// Denormalized points balances, kept consistent with the points
	// transaction log via atomic increments.
	RedeemablePoints    int        `gorm:"default:0" json:"redeemable_points"`
	TotalPointsEarned   int        `gorm:"default:0" json:"total_points_earned"`
	TotalPointsRedeemed int        `gorm:"default:0" json:"total_points_redeemed"`
	PointsLastUpdated   *time.Time `json:"points_last_updated,omitempty"`

	Donations []*Donation `gorm:"foreignKey:DonorID"`
	Timestamp
}
