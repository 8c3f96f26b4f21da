package serverutils

import (
	"errors"

	"nco-classifier-be/internal/pkg/apperror"
	"nco-classifier-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned by handlers further down the chain.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Status >= 500 {
				details := map[string]interface{}{
					"path":  ctx.Path(),
					"code":  appErr.Code,
					"error": err.Error(),
				}
				if cause := errors.Unwrap(appErr); cause != nil {
					details["cause"] = cause.Error()
				}
				log.Error("HTTP", appErr.Message, details)
			}
			res := ErrorResponse(appErr.Status, appErr.Message)
			res.ErrorCode = string(appErr.Code)
			res.Details = appErr.Details
			return ctx.Status(appErr.Status).JSON(res)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		res := ErrorResponse(fiber.StatusInternalServerError, "internal error")
		res.ErrorCode = string(apperror.ErrInternal)
		return ctx.Status(fiber.StatusInternalServerError).JSON(res)
	}
}
