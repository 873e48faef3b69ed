package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"drama-llm-be/internal/pkg/logger"
)

// RequestLoggerMiddleware logs one line per request with latency and status.
func RequestLoggerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("http", "request", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
		})
		return err
	}
}
