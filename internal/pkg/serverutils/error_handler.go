package serverutils

import (
	"errors"

	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const errorModule = "http"

// ErrorHandlerMiddleware turns any error returned down the chain into the
// response envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err, log)
	}
}

// FiberErrorHandler covers errors raised outside the middleware chain,
// such as unknown routes.
func FiberErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return WriteError(ctx, err, log)
	}
}

func WriteError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var appErr *apperror.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.Kind.Status()
		message = appErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError && log != nil {
		log.Error(errorModule, "request failed", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"kind":   apperror.KindOf(err).String(),
			"error":  err,
		})
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
