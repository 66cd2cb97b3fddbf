package client

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is the single failure shape callers of Client see. Status is 0 for
// local validation and transport failures.
type Error struct {
	Message string
	Status  int
	Payload json.RawMessage

	validation bool
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(message string) *Error {
	return &Error{Message: message, validation: true}
}

func IsNotFound(err error) bool {
	var clientErr *Error
	return errors.As(err, &clientErr) && clientErr.Status == http.StatusNotFound
}

// IsValidation reports input rejected locally or by the server with 400.
func IsValidation(err error) bool {
	var clientErr *Error
	if !errors.As(err, &clientErr) {
		return false
	}
	return clientErr.validation || clientErr.Status == http.StatusBadRequest
}
