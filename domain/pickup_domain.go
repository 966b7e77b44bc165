package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreatePickup  = "pickup request created successfully"
	MessageSuccessGetPickups    = "pickup requests retrieved successfully"
	MessageSuccessGetPickup     = "pickup request retrieved successfully"
	MessageSuccessConfirmPickup = "pickup request confirmed"
	MessageSuccessRejectPickup  = "pickup request rejected"
	MessageSuccessMarkPickedUp  = "marked as picked up"

	MessageFailedCreatePickup  = "failed to create pickup request"
	MessageFailedGetPickups    = "failed to retrieve pickup requests"
	MessageFailedConfirmPickup = "failed to confirm pickup request"
	MessageFailedRejectPickup  = "failed to reject pickup request"
	MessageFailedMarkPickedUp  = "failed to mark as picked up"

	ErrPickupRequestNotFound    = errors.New("pickup request not found")
	ErrInvalidRequestedQuantity = errors.New("requested_quantity must be a positive number")
	ErrQuantityExceedsAvailable = errors.New("requested quantity exceeds available quantity")
	ErrPickupNotPending         = errors.New("pickup request is not pending")
)

type (
	CreatePickupRequest struct {
		DonationID          string `json:"donation_id" validate:"required"`
		OrganizationID      string `json:"organization_id" validate:"omitempty,uuid"`
		RequestedQuantity   int    `json:"requested_quantity" validate:"required,min=1"`
		PickupDate          string `json:"pickup_date" validate:"omitempty"`
		PickupTime          string `json:"pickup_time" validate:"omitempty"`
		SpecialInstructions string `json:"special_instructions" validate:"omitempty,max=500"`
	}

	RejectPickupRequest struct {
		RejectionReason string `json:"rejection_reason" validate:"omitempty,max=500"`
	}

	PickupRequest struct {
		ID                  string        `json:"id"`
		DonationID          string        `json:"donation_id"`
		Donation            *Donation     `json:"donation,omitempty"`
		ReceiverID          string        `json:"receiver_id"`
		Receiver            *DonorSummary `json:"receiver,omitempty"`
		OrganizationID      string        `json:"organization_id,omitempty"`
		RequestedQuantity   int           `json:"requested_quantity"`
		Status              string        `json:"status"`
		PickupDate          *time.Time    `json:"pickup_date,omitempty"`
		PickupTime          string        `json:"pickup_time,omitempty"`
		SpecialInstructions string        `json:"special_instructions,omitempty"`
		RejectionReason     string        `json:"rejection_reason,omitempty"`
		CompletedAt         *time.Time    `json:"completed_at,omitempty"`
		CreatedAt           time.Time     `json:"created_at"`
	}
)
