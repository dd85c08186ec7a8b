package middleware

import (
	"time"

	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LogContextKey is the fiber locals key holding the request's *logger.LogContext.
const LogContextKey = "log_context"

// CanonicalLoggerMiddleware creates a middleware that logs once per request
func CanonicalLoggerMiddleware(log *logger.CanonicalLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logCtx := logger.NewLogContext()
		c.Locals(LogContextKey, logCtx)

		// Usecases reach the same LogContext through the user context.
		userCtx := logger.WithLogContext(c.UserContext(), logCtx)

		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			logCtx.AddField(zap.String(logger.FieldRequestID, id))
			userCtx = logger.WithCorrelationID(userCtx, id)
		}
		c.SetUserContext(userCtx)

		start := time.Now()

		// Deferred so the line is written even when a later handler panics
		// and recover turns it into a 500.
		defer func() {
			duration := time.Since(start)
			status := c.Response().StatusCode()

			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.Int64("duration_ms", duration.Milliseconds()),
			}
			fields = append(fields, logCtx.Fields()...)

			switch {
			case status >= 500:
				log.Error("http_request", fields...)
			case status >= 400:
				log.Info("http_request_client_error", fields...)
			default:
				log.Info("http_request", fields...)
			}
		}()

		return c.Next()
	}
}
