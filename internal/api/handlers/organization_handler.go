package handlers

import (
	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/organization"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrganizationHandler interface {
		CreateOrganization(c *fiber.Ctx) error
		GetOrganizations(c *fiber.Ctx) error
		GetOrganizationByID(c *fiber.Ctx) error
		VerifyOrganization(c *fiber.Ctx) error
		RateOrganization(c *fiber.Ctx) error
		GetOrganizationRatings(c *fiber.Ctx) error
	}

	organizationHandler struct {
		organizationService organization.OrganizationService
		validator           *validator.Validate
	}
)

func NewOrganizationHandler(organizationService organization.OrganizationService, validator *validator.Validate) OrganizationHandler {
	return &organizationHandler{
		organizationService: organizationService,
		validator:           validator,
	}
}

func (h *organizationHandler) CreateOrganization(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateOrganizationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrganization, err)
	}

	created, err := h.organizationService.CreateOrganization(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedCreateOrganization, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateOrganization)
}

func (h *organizationHandler) GetOrganizations(c *fiber.Ctx) error {
	organizations, err := h.organizationService.GetOrganizations(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetOrganizations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"organizations": organizations,
		"count":         len(organizations),
	}, fiber.StatusOK, domain.MessageSuccessGetOrganizations)
}

func (h *organizationHandler) GetOrganizationByID(c *fiber.Ctx) error {
	orgID := c.Params("id")

	found, err := h.organizationService.GetOrganizationByID(c.Context(), orgID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetOrganizations, err)
	}

	return presenters.SuccessResponse(c, found, fiber.StatusOK, domain.MessageSuccessGetOrganization)
}

func (h *organizationHandler) VerifyOrganization(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	orgID := c.Params("id")

	req := new(domain.VerifyOrganizationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyOrganization, err)
	}

	if err := h.organizationService.VerifyOrganization(c.Context(), orgID, *req, adminID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedVerifyOrganization, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessVerifyOrganization)
}

func (h *organizationHandler) RateOrganization(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	orgID := c.Params("id")

	req := new(domain.RateOrganizationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRateOrganization, err)
	}

	rating, err := h.organizationService.RateOrganization(c.Context(), orgID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedRateOrganization, err)
	}

	return presenters.SuccessResponse(c, rating, fiber.StatusCreated, domain.MessageSuccessRateOrganization)
}

func (h *organizationHandler) GetOrganizationRatings(c *fiber.Ctx) error {
	orgID := c.Params("id")

	ratings, err := h.organizationService.GetOrganizationRatings(c.Context(), orgID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetRatings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ratings": ratings,
		"count":   len(ratings),
	}, fiber.StatusOK, domain.MessageSuccessGetRatings)
}
