package middleware

import (
	"errors"

	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/wrapper"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escape handlers in the JSONResult envelope.
func ErrorHandler(log *logger.CanonicalLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.HTTPError(c.Method(), c.Path(), code, err)
		}

		res := wrapper.ResponseFailed(code, message, nil)
		return c.Status(res.Code).JSON(res)
	}
}
