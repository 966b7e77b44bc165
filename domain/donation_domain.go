package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateDonation  = "donation created successfully"
	MessageSuccessGetDonations    = "donations retrieved successfully"
	MessageSuccessGetDonation     = "donation retrieved successfully"
	MessageSuccessAcceptDonation  = "donation accepted"
	MessageSuccessRejectDonation  = "donation rejected (volunteers notified)"
	MessageSuccessUpdateDonation  = "donation updated successfully"
	MessageSuccessCancelDonation  = "donation cancelled successfully"
	MessageSuccessGetHistory      = "donation history retrieved successfully"
	MessageSuccessGetUserActivity = "user activity retrieved successfully"

	MessageFailedCreateDonation  = "failed to create donation"
	MessageFailedGetDonations    = "failed to retrieve donations"
	MessageFailedAcceptDonation  = "failed to accept donation"
	MessageFailedRejectDonation  = "failed to reject donation"
	MessageFailedUpdateDonation  = "failed to update donation"
	MessageFailedCancelDonation  = "failed to cancel donation"
	MessageFailedGetHistory      = "failed to retrieve donation history"
	MessageFailedGetUserActivity = "failed to retrieve user activity"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrDonationExpired            = errors.New("donation has expired")
	ErrDonationNotAvailable       = errors.New("donation not available")
	ErrDonationConflict           = errors.New("donation was taken by another request")
	ErrUnauthorizedDonationAccess = errors.New("not authorized to access this donation")
	ErrInvalidExpiryDate          = errors.New("expiry date must be after preparation date")
	ErrExpiryDateInPast           = errors.New("expiry date must be in the future")
	ErrInvalidContactPhone        = errors.New("contact phone must be exactly 10 digits")
	ErrOrganizationUnavailable    = errors.New("selected organization is not available for donations")
	ErrCancelNotAllowed           = errors.New("donation can no longer be cancelled")
)

type (
	CreateDonationRequest struct {
		FoodType         string                `json:"food_type" form:"food_type" validate:"required,max=100"`
		FoodCategory     string                `json:"food_category" form:"food_category" validate:"required,oneof=COOKED RAW PACKAGED BEVERAGES DAIRY BAKERY FRUITS VEGETABLES"`
		Quantity         int                   `json:"quantity" form:"quantity" validate:"required,min=1"`
		Unit             string                `json:"unit" form:"unit" validate:"omitempty,oneof=KG LITER PIECES DOZEN BOXES"`
		Description      string                `json:"description" form:"description" validate:"omitempty"`
		PreparationDate  string                `json:"preparation_date" form:"preparation_date" validate:"required"`
		ExpiryDate       string                `json:"expiry_date" form:"expiry_date" validate:"required"`
		StorageCondition string                `json:"storage_condition" form:"storage_condition" validate:"omitempty,max=100"`
		Latitude         *float64              `json:"location_latitude" form:"location_latitude"`
		Longitude        *float64              `json:"location_longitude" form:"location_longitude"`
		Address          string                `json:"address" form:"address" validate:"required,max=500"`
		City             string                `json:"city" form:"city" validate:"required,max=100"`
		ContactName      string                `json:"contact_name" form:"contact_name" validate:"required,max=100"`
		ContactPhone     string                `json:"contact_phone" form:"contact_phone" validate:"required"`
		ContactEmail     string                `json:"contact_email" form:"contact_email" validate:"omitempty,email"`
		OrganizationUUID string                `json:"organization_uuid" form:"organization_uuid" validate:"omitempty,uuid"`
		FoodImage        *multipart.FileHeader `json:"-" form:"food_image"`
	}

	UpdateDonationRequest struct {
		FoodType         *string               `json:"food_type" validate:"omitempty,max=100"`
		FoodCategory     *string               `json:"food_category" validate:"omitempty,oneof=COOKED RAW PACKAGED BEVERAGES DAIRY BAKERY FRUITS VEGETABLES"`
		Unit             *string               `json:"unit" validate:"omitempty,oneof=KG LITER PIECES DOZEN BOXES"`
		Description      *string               `json:"description"`
		StorageCondition *string               `json:"storage_condition" validate:"omitempty,max=100"`
		Address          *string               `json:"address" validate:"omitempty,max=500"`
		City             *string               `json:"city" validate:"omitempty,max=100"`
		ContactName      *string               `json:"contact_name" validate:"omitempty,max=100"`
		ContactPhone     *string               `json:"contact_phone"`
		ContactEmail     *string               `json:"contact_email" validate:"omitempty,email"`
		FoodImage        *multipart.FileHeader `json:"-" form:"food_image"`
	}

	DonationFilter struct {
		Status       string
		City         string
		FoodCategory string
		Search       string
		NGOName      string
		Latitude     *float64
		Longitude    *float64
		RadiusKm     float64
	}

	AcceptedBySummary struct {
		UserID         string `json:"user_id,omitempty"`
		Name           string `json:"name,omitempty"`
		OrganizationID string `json:"organization_id,omitempty"`
		Role           string `json:"role,omitempty"`
		Rejected       bool   `json:"rejected"`
	}

	DonorSummary struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name,omitempty"`
		Phone     string `json:"phone,omitempty"`
		Email     string `json:"email,omitempty"`
	}

	Donation struct {
		ID                string             `json:"id"`
		DonorID           string             `json:"donor_id"`
		Donor             *DonorSummary      `json:"donor,omitempty"`
		OrganizationID    string             `json:"organization_id,omitempty"`
		Organization      *OrganizationBrief `json:"organization,omitempty"`
		FoodType          string             `json:"food_type"`
		FoodCategory      string             `json:"food_category"`
		Quantity          int                `json:"quantity"`
		Unit              string             `json:"unit"`
		Description       string             `json:"description,omitempty"`
		PreparationDate   time.Time          `json:"preparation_date"`
		ExpiryDate        time.Time          `json:"expiry_date"`
		StorageCondition  string             `json:"storage_condition,omitempty"`
		Latitude          *float64           `json:"location_latitude,omitempty"`
		Longitude         *float64           `json:"location_longitude,omitempty"`
		DistanceKm        *float64           `json:"distance_km,omitempty"`
		Address           string             `json:"address"`
		City              string             `json:"city"`
		ContactName       string             `json:"contact_name"`
		ContactPhone      string             `json:"contact_phone"`
		ContactEmail      string             `json:"contact_email,omitempty"`
		ImageURL          string             `json:"image_url,omitempty"`
		Status            string             `json:"status"`
		AvailabilityCount int                `json:"availability_count"`
		AcceptedBy        *AcceptedBySummary `json:"accepted_by,omitempty"`
		CreatedAt         time.Time          `json:"created_at"`
		UpdatedAt         time.Time          `json:"updated_at"`
	}

	ActivityEntry struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		DonationID  string    `json:"donation_id"`
		Action      string    `json:"action"`
		Description string    `json:"description,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
