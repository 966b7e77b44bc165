package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

type Organization struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`

	OrganizationType string `json:"organization_type"` // NGO, CHARITY, RESTAURANT, HOTEL, INDIVIDUAL, EVENT_ORGANIZER
	Description      string `json:"description,omitempty"`

	RegistrationNumber string `json:"registration_number,omitempty"`
	Website            string `json:"website,omitempty"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`

	LocationLatitude  *float64 `json:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	ZipCode           string   `json:"zip_code,omitempty"`

	VerificationStatus string     `gorm:"default:PENDING" json:"verification_status"`
	VerifiedByID       *uuid.UUID `json:"verified_by,omitempty"`
	VerifiedDate       *time.Time `json:"verified_date,omitempty"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`

	RegistrationDocumentURL string    `json:"registration_document_url,omitempty"`
	CreatedByID             uuid.UUID `json:"created_by"`

	// Star ratings submitted by users, aggregated below.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	RatingCount   int     `gorm:"default:0" json:"rating_count"`

	// Acceptance-derived score. decision_count only grows; accepted_count
	// never exceeds decision_count.
	AcceptedCount   int     `gorm:"default:0" json:"accepted_count"`
	DecisionCount   int     `gorm:"default:0" json:"decision_count"`
	AcceptanceScore float64 `gorm:"default:0" json:"acceptance_score"`

	CreatedBy *User                 `gorm:"foreignKey:CreatedByID"`
	Ratings   []*OrganizationRating `gorm:"foreignKey:OrganizationID"`
	Timestamp
}

type OrganizationRating struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	UserID         uuid.UUID `json:"user_id"`
	Rating         int       `json:"rating"` // 1-5
	Comment        string    `json:"comment,omitempty"`

	Organization *Organization `gorm:"foreignKey:OrganizationID"`
	User         *User         `gorm:"foreignKey:UserID"`
	Timestamp
}
