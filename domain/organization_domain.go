package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateOrganization = "organization created successfully"
	MessageSuccessGetOrganizations   = "organizations retrieved successfully"
	MessageSuccessGetOrganization    = "organization retrieved successfully"
	MessageSuccessVerifyOrganization = "organization verification updated"
	MessageSuccessRateOrganization   = "rating submitted successfully"
	MessageSuccessGetRatings         = "ratings retrieved successfully"

	MessageFailedCreateOrganization = "failed to create organization"
	MessageFailedGetOrganizations   = "failed to retrieve organizations"
	MessageFailedVerifyOrganization = "failed to update organization verification"
	MessageFailedRateOrganization   = "failed to submit rating"
	MessageFailedGetRatings         = "failed to retrieve ratings"

	ErrOrganizationNotFound     = errors.New("organization not found")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated             = errors.New("you have already rated this organization")
	ErrInvalidVerificationState = errors.New("verification status must be APPROVED or REJECTED")
)

type (
	CreateOrganizationRequest struct {
		Name               string   `json:"name" validate:"required,max=255"`
		OrganizationType   string   `json:"organization_type" validate:"required,oneof=NGO CHARITY RESTAURANT HOTEL INDIVIDUAL EVENT_ORGANIZER"`
		Description        string   `json:"description" validate:"omitempty"`
		RegistrationNumber string   `json:"registration_number" validate:"omitempty,max=100"`
		Website            string   `json:"website" validate:"omitempty,max=500"`
		Email              string   `json:"email" validate:"required,email"`
		Phone              string   `json:"phone" validate:"required,max=20"`
		Latitude           *float64 `json:"location_latitude"`
		Longitude          *float64 `json:"location_longitude"`
		Address            string   `json:"address" validate:"required,max=500"`
		City               string   `json:"city" validate:"required,max=100"`
		State              string   `json:"state" validate:"required,max=100"`
		ZipCode            string   `json:"zip_code" validate:"omitempty,max=10"`
	}

	VerifyOrganizationRequest struct {
		VerificationStatus string `json:"verification_status" validate:"required,oneof=APPROVED REJECTED"`
	}

	RateOrganizationRequest struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment" validate:"omitempty,max=1000"`
	}

	OrganizationBrief struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		City  string `json:"city,omitempty"`
		State string `json:"state,omitempty"`
	}

	Organization struct {
		ID                 string    `json:"id"`
		Name               string    `json:"name"`
		OrganizationType   string    `json:"organization_type"`
		Description        string    `json:"description,omitempty"`
		Email              string    `json:"email"`
		Phone              string    `json:"phone"`
		Address            string    `json:"address"`
		City               string    `json:"city"`
		State              string    `json:"state"`
		VerificationStatus string    `json:"verification_status"`
		IsActive           bool      `json:"is_active"`
		AverageRating      float64   `json:"average_rating"`
		RatingCount        int       `json:"rating_count"`
		AcceptedCount      int       `json:"accepted_count"`
		DecisionCount      int       `json:"decision_count"`
		AcceptanceScore    float64   `json:"acceptance_score"`
		DisplayRating      float64   `json:"display_rating"`
		CreatedAt          time.Time `json:"created_at"`
	}

	OrganizationRating struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		UserName  string    `json:"user_name,omitempty"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"comment,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
