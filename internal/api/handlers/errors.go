package handlers

import (
	"errors"

	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps service errors to HTTP status codes. Anything unknown is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingInput),
		errors.Is(err, service.ErrMalformedRow),
		errors.Is(err, service.ErrInvalidBudget),
		errors.Is(err, service.ErrNoBudgets),
		errors.Is(err, service.ErrNoExpenseData):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrModelUnavailable),
		errors.Is(err, service.ErrAdvisorDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Client errors carry the service
// message; internal ones are logged and replaced with fallback.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	code := statusFor(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
		msg = fallback
	}
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
	})
}
