package middleware

import (
	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/limiter"
	"task-tracker.com/task-tracker/internal/logger"
)

// RateLimiter rejects requests over the limiter's budget for the caller IP.
// When the limiter itself fails the request is let through.
func RateLimiter(l limiter.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			allowed, err := l.Allow(ctx, c.RealIP())
			if err != nil {
				logger.WarnContext(ctx, "rate limiter unavailable", "error", err)
				return next(c)
			}
			if !allowed {
				return apperrors.ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
