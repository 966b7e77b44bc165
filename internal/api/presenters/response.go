package presenters

import (
	"errors"

	"foodbridge-backend/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}

var statusByError = map[error]int{
	domain.ErrTokenExpired:  fiber.StatusUnauthorized,
	domain.ErrTokenInvalid:  fiber.StatusUnauthorized,
	domain.ErrTokenNotFound: fiber.StatusUnauthorized,

	domain.ErrUserNotAllowed:             fiber.StatusForbidden,
	domain.ErrUnauthorizedDonationAccess: fiber.StatusForbidden,

	domain.ErrUserNotFound:          fiber.StatusNotFound,
	domain.ErrDonationNotFound:      fiber.StatusNotFound,
	domain.ErrPickupRequestNotFound: fiber.StatusNotFound,
	domain.ErrOrganizationNotFound:  fiber.StatusNotFound,
	domain.ErrTransactionNotFound:   fiber.StatusNotFound,

	domain.ErrDonationConflict:     fiber.StatusConflict,
	domain.ErrAlreadyRated:         fiber.StatusConflict,
	domain.ErrTransactionReversed:  fiber.StatusConflict,
	domain.ErrDonationExpired:      fiber.StatusConflict,
	domain.ErrDonationNotAvailable: fiber.StatusConflict,
	domain.ErrCancelNotAllowed:     fiber.StatusConflict,
	domain.ErrPickupNotPending:     fiber.StatusConflict,
}

// StatusFor maps a service error onto the HTTP status taxonomy. Unknown
// errors are treated as bad requests rather than leaking a 500 for every
// validation failure bubbled up from the service layer.
func StatusFor(err error) int {
	for sentinel, status := range statusByError {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return fiber.StatusBadRequest
}
