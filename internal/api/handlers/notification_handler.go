package handlers

import (
	"strconv"

	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		MarkAllRead(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	notifications, count, err := h.notificationService.GetUserNotifications(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"notifications": notifications,
		"pagination":    domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}
