package wrapper

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// JSONResult is the envelope every gateway endpoint answers with. Code is
// the HTTP status and is not serialized.
type JSONResult struct {
	Code    int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func ResponseSuccess(httpCode int, data any) JSONResult {
	return JSONResult{
		Code:    httpCode,
		Success: true,
		Message: "Success",
		Data:    data,
	}
}

// ResponseFailed builds a failure envelope. An empty message falls back to
// the status text.
func ResponseFailed(httpCode int, message string, data any) JSONResult {
	if message == "" {
		message = http.StatusText(httpCode)
	}
	return JSONResult{
		Code:    httpCode,
		Success: false,
		Message: message,
		Data:    data,
	}
}

// Send writes r as the response of c.
func (r JSONResult) Send(c *fiber.Ctx) error {
	return c.Status(r.Code).JSON(r)
}
