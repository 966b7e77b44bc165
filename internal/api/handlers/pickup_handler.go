package handlers

import (
	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/pickup"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PickupHandler interface {
		CreatePickupRequest(c *fiber.Ctx) error
		GetPickupRequests(c *fiber.Ctx) error
		GetPickupRequestByID(c *fiber.Ctx) error
		ConfirmPickupRequest(c *fiber.Ctx) error
		RejectPickupRequest(c *fiber.Ctx) error
		MarkPickedUp(c *fiber.Ctx) error
	}

	pickupHandler struct {
		pickupService pickup.PickupService
		validator     *validator.Validate
	}
)

func NewPickupHandler(pickupService pickup.PickupService, validator *validator.Validate) PickupHandler {
	return &pickupHandler{
		pickupService: pickupService,
		validator:     validator,
	}
}

func (h *pickupHandler) CreatePickupRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePickup, err)
	}

	created, err := h.pickupService.CreatePickupRequest(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedCreatePickup, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreatePickup)
}

func (h *pickupHandler) GetPickupRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status")

	var (
		requests []*domain.PickupRequest
		err      error
	)
	// type=sent lists the user's outgoing requests; type=received lists
	// requests against the user's donations.
	switch c.Query("type", "sent") {
	case "received":
		requests, err = h.pickupService.GetReceivedRequests(c.Context(), userID, status)
	default:
		requests, err = h.pickupService.GetSentRequests(c.Context(), userID, status)
	}
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"requests": requests,
		"count":    len(requests),
	}, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *pickupHandler) GetPickupRequestByID(c *fiber.Ctx) error {
	requestID := c.Params("id")

	found, err := h.pickupService.GetPickupRequestByID(c.Context(), requestID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, found, fiber.StatusOK, domain.MessageSuccessGetPickup)
}

func (h *pickupHandler) ConfirmPickupRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	confirmed, err := h.pickupService.ConfirmPickupRequest(c.Context(), requestID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedConfirmPickup, err)
	}

	return presenters.SuccessResponse(c, confirmed, fiber.StatusOK, domain.MessageSuccessConfirmPickup)
}

func (h *pickupHandler) RejectPickupRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	req := new(domain.RejectPickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRejectPickup, err)
	}

	rejected, err := h.pickupService.RejectPickupRequest(c.Context(), requestID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedRejectPickup, err)
	}

	return presenters.SuccessResponse(c, rejected, fiber.StatusOK, domain.MessageSuccessRejectPickup)
}

func (h *pickupHandler) MarkPickedUp(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	picked, err := h.pickupService.MarkPickedUp(c.Context(), requestID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedMarkPickedUp, err)
	}

	return presenters.SuccessResponse(c, picked, fiber.StatusOK, domain.MessageSuccessMarkPickedUp)
}
