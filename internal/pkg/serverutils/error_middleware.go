package serverutils

import (
	"errors"

	"spiritual-guidance-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps typed service errors onto HTTP status codes.
// Provider and monitoring errors never reach this layer: they are absorbed
// into fallbacks or swallowed before the handler returns.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var inputErr *dto.ClientInputError
		if errors.As(err, &inputErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, inputErr.Message))
		}

		var creditsErr *dto.InsufficientCreditsError
		if errors.As(err, &creditsErr) {
			resp := ErrorResponse(fiber.StatusPaymentRequired, creditsErr.Error())
			resp.Data = map[string]interface{}{
				"required":  creditsErr.Required,
				"available": creditsErr.Available,
			}
			return ctx.Status(fiber.StatusPaymentRequired).JSON(resp)
		}

		var notFoundErr *dto.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, notFoundErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		// Persistence and unexpected errors: generic 500, detail stays in logs.
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
