package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/logger"
)

const internalErrorMessage = "internal server error"

// ErrorHandler renders every error as {"error": message}. Server-side
// failures get an opaque message and are logged in full.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := resolve(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		message = internalErrorMessage
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, dto.ErrorResponse{Error: message})
	}
	if err != nil {
		logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
	}
}

func resolve(err error) (int, string) {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, internalErrorMessage
}
