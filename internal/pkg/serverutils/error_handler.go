package serverutils

import (
	"errors"

	"persona-replicator-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned further down the chain.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handler := NewErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return handler(ctx, err)
	}
}

// NewErrorHandler is the fiber.Config ErrorHandler. Fiber errors keep their
// code and message, validation errors become 400 and anything else is
// logged and hidden behind a 500.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return func(ctx *fiber.Ctx, err error) error {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponseWithData(fiber.StatusBadRequest, "Validation failed", verr.Fields))
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			if ferr.Code >= fiber.StatusInternalServerError {
				log.Error("HTTP", ferr.Message, map[string]interface{}{"path": ctx.Path(), "method": ctx.Method()})
			}
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
