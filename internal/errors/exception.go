package errors

import (
	"errors"
	"net/http"
)

// Exception is an error that knows the HTTP status it maps to.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Validation returns a 400 exception with a caller-facing message.
func Validation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a client-side input problem.
func IsValidation(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}
