package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/logger"
)

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the error handler write the status before it is logged
				c.Error(err)
			}

			req := c.Request()
			logger.InfoContext(req.Context(), "request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"latency", time.Since(start).String(),
				"ip", c.RealIP(),
			)
			return nil
		}
	}
}
