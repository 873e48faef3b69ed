package serverutils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts every error escaping a handler into the
// response envelope. Unexpected errors become a 500 whose original message
// is hidden in production.
func ErrorHandlerMiddleware(log logger.ILogger, production bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, message := classifyError(err)

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
			"error":  err.Error(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("http", "request failed", details)
			if production {
				message = "Internal server error"
			}
		} else {
			log.Warn("http", "request rejected", details)
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

func classifyError(err error) (int, string) {
	// Non-operational AppErrors (KindInternal) fall through to the 500 path.
	if appErr, ok := apperror.As(err); ok && appErr.Operational() {
		return appErr.StatusCode(), appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return fiber.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "duplicate key"):
		return fiber.StatusConflict, "Resource already exists"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, "Resource not found"
	}

	return fiber.StatusInternalServerError, err.Error()
}
