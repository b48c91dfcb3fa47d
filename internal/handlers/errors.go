package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/karadenizdev/taskman-backend/internal/apperror"
	"github.com/karadenizdev/taskman-backend/internal/dto"
)

// ErrorHandler is the fiber app error handler. Domain errors carry their own
// status code and client-safe message; not-found responses stay empty so
// "missing" and "not yours" are indistinguishable on the wire. Server errors
// are logged with the request id so log rows can be matched to responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			slog.Error("request failed",
				"method", c.Method(), "path", c.Path(),
				"request_id", requestID(c), "error", appErr.Error())
		}
		if appErr.Code == fiber.StatusNotFound {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.Status(appErr.Code).JSON(dto.ErrorResponse{
			Error:   true,
			Message: appErr.Message,
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(), "path", c.Path(),
			"request_id", requestID(c), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
