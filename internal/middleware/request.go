package middleware

import (
	"strings"
	"time"

	"studion/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	UserIDHeader    = "X-User-ID"

	RequestIDKey = "requestID" // fiber.Ctx locals key
	UserIDKey    = "userID"    // fiber.Ctx locals key
)

// RequestLogger logs every request with a request id, generating one when
// the caller did not send X-Request-ID.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			// let the error handler write the status before it is logged
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		)
		return nil
	}
}

// RequestIDFrom returns the request id stored by RequestLogger.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}

// RequireUser takes the caller identity from X-User-ID, set by the gateway
// in front of this service.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(UserIDHeader))
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_USER",
				Message: "X-User-ID header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserIDFrom returns the identity stored by RequireUser.
func UserIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
