package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bid-agent-be/pkg/agent/feedback"
	"bid-agent-be/pkg/ingest"
	"bid-agent-be/pkg/store"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses. Errors stay
// local to one request; nothing here is fatal to the process.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, store.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("Session not found", nil))

		case errors.Is(err, feedback.ErrInvalidFeedback):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error(), nil))

		case errors.Is(err, ingest.ErrUnsupportedFormat), errors.Is(err, ingest.ErrEmptyDocument):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error(), nil))

		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse("Validation failed", validationErr.Fields))

		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message, nil))

		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error", err.Error()))
		}
	}
}
