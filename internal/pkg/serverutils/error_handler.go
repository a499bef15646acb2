package serverutils

import (
	"errors"

	"neurax-chat-be/internal/service"
	"neurax-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP statuses so controllers
// can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError

		var validationErr *ValidationError
		var unsupportedErr *llm.UnsupportedProviderError
		var configErr *llm.ConfigurationError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, service.ErrTurnInProgress):
			code = fiber.StatusConflict
		case errors.Is(err, service.ErrEmptyMessage):
			code = fiber.StatusBadRequest
		case errors.Is(err, service.ErrConversationNotFound):
			code = fiber.StatusNotFound
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
		case errors.As(err, &unsupportedErr):
			code = fiber.StatusUnprocessableEntity
		case errors.As(err, &configErr):
			code = fiber.StatusServiceUnavailable
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
