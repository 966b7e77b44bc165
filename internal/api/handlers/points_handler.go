package handlers

import (
	"strconv"

	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/points"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PointsHandler interface {
		GetMyPoints(c *fiber.Ctx) error
		GetPointsHistory(c *fiber.Ctx) error
		GetLeaderboard(c *fiber.Ctx) error
		GetPointsInfo(c *fiber.Ctx) error
		RedeemPoints(c *fiber.Ctx) error
		ReversePoints(c *fiber.Ctx) error
	}

	pointsHandler struct {
		pointsService points.PointsService
		validator     *validator.Validate
	}
)

func NewPointsHandler(pointsService points.PointsService, validator *validator.Validate) PointsHandler {
	return &pointsHandler{
		pointsService: pointsService,
		validator:     validator,
	}
}

func (h *pointsHandler) GetMyPoints(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	summary, err := h.pointsService.GetSummary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetPoints, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetPoints)
}

func (h *pointsHandler) GetPointsHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	transactions, count, err := h.pointsService.GetHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetHistoryLog, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination":   domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetHistoryLog)
}

func (h *pointsHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	leaderboard, err := h.pointsService.GetLeaderboard(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"leaderboard": leaderboard,
	}, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}

func (h *pointsHandler) GetPointsInfo(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.pointsService.GetPointsInfo(), fiber.StatusOK, domain.MessageSuccessGetPointsInfo)
}

func (h *pointsHandler) RedeemPoints(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RedeemPointsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRedeemPoints, err)
	}

	summary, err := h.pointsService.Redeem(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedRedeemPoints, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessRedeemPoints)
}

func (h *pointsHandler) ReversePoints(c *fiber.Ctx) error {
	transactionID := c.Params("id")

	req := new(domain.ReversePointsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReversePoints, err)
	}

	transaction, err := h.pointsService.Reverse(c.Context(), transactionID, req.Reason)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedReversePoints, err)
	}

	return presenters.SuccessResponse(c, transaction, fiber.StatusOK, domain.MessageSuccessReversePoints)
}
