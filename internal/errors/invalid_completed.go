package errors

import "net/http"

var ErrInvalidCompleted = &Exception{
	Message:    "completed must be a boolean (true/false, \"true\"/\"false\", 1/0)",
	StatusCode: http.StatusBadRequest,
}
