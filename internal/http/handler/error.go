package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"coachdemo/internal/http/middleware"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// routingCodes names the client errors Fiber itself raises while routing and parsing.
var routingCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
}

// writeError writes the error envelope. code is a short machine-readable value such
// as "INVALID_ID"; message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// ErrorHandler renders errors returned by handlers and by routing as the error envelope.
// Anything that is not a known client error becomes INTERNAL_ERROR and is logged with
// the request ID; its text never reaches the client.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		if code, ok := routingCodes[status]; ok {
			return writeError(c, status, code, strings.ToLower(utils.StatusMessage(status)))
		}

		if status < fiber.StatusInternalServerError {
			status = fiber.StatusInternalServerError
		}
		log.Error("unhandled error",
			zap.String("request_id", middleware.RequestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
