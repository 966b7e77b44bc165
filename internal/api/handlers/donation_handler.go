package handlers

import (
	"strconv"

	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetDonations(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		AcceptDonation(c *fiber.Ctx) error
		RejectDonation(c *fiber.Ctx) error
		UpdateDonation(c *fiber.Ctx) error
		CancelDonation(c *fiber.Ctx) error
		GetDonationHistory(c *fiber.Ctx) error
		GetUserActivity(c *fiber.Ctx) error
		GetMyDonations(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.FoodImage, _ = c.FormFile("food_image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	created, err := h.donationService.CreateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)

	filter := domain.DonationFilter{
		Status:       c.Query("status"),
		City:         c.Query("city"),
		FoodCategory: c.Query("category"),
		Search:       c.Query("search"),
		NGOName:      c.Query("ngo"),
	}

	if latStr := c.Query("latitude"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
		}
		lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
		}
		filter.Latitude = &lat
		filter.Longitude = &lon
		if radius, err := strconv.ParseFloat(c.Query("radius", "10"), 64); err == nil && radius > 0 {
			filter.RadiusKm = radius
		}
	}

	donations, err := h.donationService.GetDonations(c.Context(), filter, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
		"count":     len(donations),
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	donationID := c.Params("id")
	if donationID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, domain.ErrDonationNotFound)
	}

	found, err := h.donationService.GetDonationByID(c.Context(), donationID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, found, fiber.StatusOK, domain.MessageSuccessGetDonation)
}

func (h *donationHandler) AcceptDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	accepted, err := h.donationService.AcceptDonation(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedAcceptDonation, err)
	}

	return presenters.SuccessResponse(c, accepted, fiber.StatusOK, domain.MessageSuccessAcceptDonation)
}

func (h *donationHandler) RejectDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	rejected, err := h.donationService.RejectDonation(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedRejectDonation, err)
	}

	return presenters.SuccessResponse(c, rejected, fiber.StatusOK, domain.MessageSuccessRejectDonation)
}

func (h *donationHandler) UpdateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	req := new(domain.UpdateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.FoodImage, _ = c.FormFile("food_image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	updated, err := h.donationService.UpdateDonation(c.Context(), donationID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) CancelDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.CancelDonation(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedCancelDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelDonation)
}

func (h *donationHandler) GetDonationHistory(c *fiber.Ctx) error {
	donationID := c.Params("id")

	entries, err := h.donationService.GetDonationHistory(c.Context(), donationID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"history": entries,
	}, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *donationHandler) GetUserActivity(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	entries, err := h.donationService.GetUserActivity(c.Context(), userID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetUserActivity, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"activity": entries,
	}, fiber.StatusOK, domain.MessageSuccessGetUserActivity)
}

func (h *donationHandler) GetMyDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)

	donations, err := h.donationService.GetMyDonations(c.Context(), userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
		"count":     len(donations),
	}, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
