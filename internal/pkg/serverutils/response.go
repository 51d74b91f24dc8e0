package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse builds the error envelope every endpoint uses.
func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"code":  code,
		"error": message,
	}
}

// ErrorResponseWithId adds the request-correlation id for AI endpoints.
func ErrorResponseWithId(code int, message, requestId string) fiber.Map {
	m := ErrorResponse(code, message)
	if requestId != "" {
		m["request_id"] = requestId
	}
	return m
}

// RespondError translates a service error via the taxonomy and writes it.
func RespondError(ctx *fiber.Ctx, err error) error {
	status := StatusOf(err)
	return ctx.Status(status).JSON(ErrorResponseWithId(status, SafeMessage(err), RequestIdOf(err)))
}

// ErrorHandlerMiddleware converts panics into a safe 500 envelope so nothing
// propagates past the exposed surface as a raw fault.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, "Unexpected internal error"))
			}
		}()
		return ctx.Next()
	}
}
